// Package stats contains the letter statistics used to attack the ciphers
// and the text rendering of their results.
package stats

import (
	"math"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
)

// LetterCounts counts the occurrences of each letter; text is normalised
// first, so case and punctuation do not matter.
func LetterCounts(text string) [alphabet.Size]int {
	var counts [alphabet.Size]int
	text = alphabet.Normalize(text)
	for i := 0; i < len(text); i++ {
		if idx := alphabet.Index(text[i]); idx >= 0 {
			counts[idx]++
		}
	}
	return counts
}

// LetterFrequencies returns relative letter frequencies; all zero for empty text.
func LetterFrequencies(text string) [alphabet.Size]float64 {
	var freqs [alphabet.Size]float64
	counts := LetterCounts(text)
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return freqs
	}
	for i, c := range counts {
		freqs[i] = float64(c) / float64(total)
	}
	return freqs
}

// IndexOfCoincidence returns the probability that two letters drawn without
// replacement are equal. Texts with fewer than two letters report 0.
func IndexOfCoincidence(text string) float64 {
	counts := LetterCounts(text)
	n := 0
	sum := 0
	for _, c := range counts {
		n += c
		sum += c * (c - 1)
	}
	if n <= 1 {
		return 0
	}
	return float64(sum) / (float64(n) * float64(n-1))
}

// FriedmanEstimate estimates the key length from the IC, clamped to [1,25].
func FriedmanEstimate(text string) int {
	est, _ := friedman(text)
	return est
}

func friedman(text string) (int, float64) {
	ic := IndexOfCoincidence(text)
	n := 0
	for _, c := range LetterCounts(text) {
		n += c
	}
	if n <= 1 || ic == alphabet.RandomIC {
		return 1, ic
	}
	est := math.Round((alphabet.EnglishIC - alphabet.RandomIC) / (ic - alphabet.RandomIC))
	switch {
	case math.IsNaN(est) || est < 1:
		return 1, ic
	case est > 25:
		return 25, ic
	default:
		return int(est), ic
	}
}

// Columns splits text into length columns by position modulo length.
func Columns(text string, length int) []string {
	if length <= 0 {
		return nil
	}
	cols := make([][]byte, length)
	for i := 0; i < len(text); i++ {
		cols[i%length] = append(cols[i%length], text[i])
	}
	out := make([]string, length)
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}

// AverageColumnIC is the mean IC of the columns for an assumed key length.
// English-like columns push it towards alphabet.EnglishIC.
func AverageColumnIC(text string, length int) float64 {
	cols := Columns(text, length)
	if len(cols) == 0 {
		return 0
	}
	var sum float64
	for _, col := range cols {
		sum += IndexOfCoincidence(col)
	}
	return sum / float64(len(cols))
}
