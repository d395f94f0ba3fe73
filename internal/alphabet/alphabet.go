// Package alphabet defines the 26-letter alphabet, English reference
// statistics and text normalisation shared by the ciphers and the analysis.
package alphabet

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Letters is the ordered alphabet.
	Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Size is the number of letters in the alphabet.
	Size = 26

	// Filler pads doubled letters and odd-length messages in the digram cipher.
	Filler byte = 'X'
	// Merged is the letter folded into MergedInto so the digram table holds 25 cells.
	Merged byte = 'J'
	// MergedInto receives the merged letter.
	MergedInto byte = 'I'

	// EnglishIC is the reference index of coincidence of English text.
	EnglishIC = 0.0667
	// RandomIC is the index of coincidence of uniformly random letters.
	RandomIC = 1.0 / Size
)

// EnglishFrequencies holds the expected relative frequency of each letter A..Z.
var EnglishFrequencies = [Size]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // A-G
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // H-N
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // O-U
	0.00978, 0.0236, 0.0015, 0.01974, 0.00074, // V-Z
}

// Index returns the position of an upper-case letter, or -1.
func Index(letter byte) int {
	if letter < 'A' || letter > 'Z' {
		return -1
	}
	return int(letter - 'A')
}

// Letter returns the letter at index, reduced modulo the alphabet size.
func Letter(index int) byte {
	index %= Size
	if index < 0 {
		index += Size
	}
	return Letters[index]
}

// IsLetter reports whether b is an upper-case alphabet letter.
func IsLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// Normalize folds accents, upper-cases ASCII letters and drops everything else.
func Normalize(text string) string {
	if !isASCII(text) {
		folded, _, err := transform.String(foldAccents(), text)
		if err == nil {
			text = folded
		}
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch)
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch - 'a' + 'A')
		}
	}
	return b.String()
}

func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
