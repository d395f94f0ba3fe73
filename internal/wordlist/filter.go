package wordlist

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// MinWordLength is the shortest dictionary word used for readability.
// Single letters would cover almost any text.
const MinWordLength = 2

// EnglishWords keeps plain ASCII words of at least MinWordLength letters.
// Accented, hyphenated and apostrophised entries are dropped since the
// ciphers only see A-Z.
func EnglishWords(word string) bool {
	if len(word) < MinWordLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i] | 0x20
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// Filter returns the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
