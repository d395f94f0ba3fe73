package attack

import (
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/stats"
)

// RecoverSubstitutionKey guesses a substitution key of the given length. For
// each column it picks the shift whose decryption best correlates with
// English letter frequencies; ties go to the smaller shift.
func RecoverSubstitutionKey(ciphertext string, length int) string {
	if length <= 0 {
		return ""
	}
	text := alphabet.Normalize(ciphertext)
	var key strings.Builder
	key.Grow(length)
	for _, col := range stats.Columns(text, length) {
		key.WriteByte(alphabet.Letter(bestShift(col)))
	}
	return key.String()
}

func bestShift(column string) int {
	counts := stats.LetterCounts(column)
	best, bestScore := 0, -1.0
	for shift := 0; shift < alphabet.Size; shift++ {
		if s := shiftCorrelation(counts, len(column), shift); s > bestScore {
			best, bestScore = shift, s
		}
	}
	return best
}

// shiftCorrelation is the dot product of the column's letter frequencies
// after undoing shift with the English frequencies.
func shiftCorrelation(counts [alphabet.Size]int, n, shift int) float64 {
	if n == 0 {
		return 0
	}
	var sum float64
	for c, count := range counts {
		if count == 0 {
			continue
		}
		plain := (c - shift + alphabet.Size) % alphabet.Size
		sum += float64(count) / float64(n) * alphabet.EnglishFrequencies[plain]
	}
	return sum
}
