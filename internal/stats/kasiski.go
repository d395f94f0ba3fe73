package stats

import (
	"sort"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/model"
)

const (
	// MinFactor and MaxFactor bound the divisor histogram.
	MinFactor = 2
	MaxFactor = 30
)

// RepeatedSubstringDistances maps every substring of length minLen..maxLen that
// occurs more than once to the distances between each occurrence and every
// earlier occurrence of the same substring. Distances are measured in the
// normalised text.
func RepeatedSubstringDistances(text string, minLen, maxLen int) map[string][]int {
	text = alphabet.Normalize(text)
	dists := map[string][]int{}
	if minLen < 1 {
		minLen = 1
	}
	for l := minLen; l <= maxLen; l++ {
		seen := map[string][]int{}
		for i := 0; i+l <= len(text); i++ {
			sub := text[i : i+l]
			prev := seen[sub]
			for _, p := range prev {
				dists[sub] = append(dists[sub], i-p)
			}
			seen[sub] = append(prev, i)
		}
	}
	return dists
}

// DivisorHistogram counts, for each factor in [MinFactor,MaxFactor], how many
// recorded distances it divides. Factors are ordered by descending count,
// then ascending factor; factors dividing nothing are omitted.
func DivisorHistogram(distances map[string][]int) []model.FactorCount {
	var counts [MaxFactor + 1]int
	for _, list := range distances {
		for _, d := range list {
			for f := MinFactor; f <= MaxFactor; f++ {
				if d%f == 0 {
					counts[f]++
				}
			}
		}
	}
	out := make([]model.FactorCount, 0, MaxFactor)
	for f := MinFactor; f <= MaxFactor; f++ {
		if counts[f] > 0 {
			out = append(out, model.FactorCount{Factor: f, Count: counts[f]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Factor < out[j].Factor
		}
		return out[i].Count > out[j].Count
	})
	return out
}
