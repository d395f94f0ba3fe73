package breaker

import "bytes"

const (
	trigramWeight = 2
	wordWeight    = 1
)

var (
	commonTrigrams = toPatterns("THE", "AND", "ING", "ENT", "ION", "HER", "FOR", "THA", "NDE", "HAT", "ERE", "TED", "TER", "ERS")
	commonWords    = toPatterns("THE", "AND", "TO", "OF", "IN", "IS", "IT", "YOU")
)

func toPatterns(words ...string) [][]byte {
	out := make([][]byte, len(words))
	for i, w := range words {
		out[i] = []byte(w)
	}
	return out
}

// Score rates how English-like upper-case text looks: twice the common
// trigram occurrences plus the common short word occurrences. Occurrences of
// one pattern do not overlap.
func Score(text []byte) int {
	score := 0
	for _, p := range commonTrigrams {
		score += trigramWeight * bytes.Count(text, p)
	}
	for _, p := range commonWords {
		score += wordWeight * bytes.Count(text, p)
	}
	return score
}

// ScoreString is Score for strings.
func ScoreString(text string) int {
	return Score([]byte(text))
}
