package stats

import (
	"sort"

	"github.com/verte-zerg/vigenplay/internal/model"
)

const (
	// FriedmanBonus is the weight added to the Friedman estimate's length.
	FriedmanBonus = 2
	// MaxRankedLength is the longest key length the ranker proposes.
	MaxRankedLength = 25
	// FallbackLengths are always tried after the ranked lengths.
	FallbackLengths = 5

	histogramHead = 20
)

// RankKeyLengths merges the divisor histogram and the Friedman estimate into
// the top candidate key lengths, heaviest first with ties to the shorter
// length. Lengths 1..FallbackLengths are appended when missing.
func RankKeyLengths(hist []model.FactorCount, friedmanEstimate, top int) []model.KeyLengthCandidate {
	weights := map[int]int{}
	for i, fc := range hist {
		if i >= histogramHead {
			break
		}
		if fc.Factor > 1 && fc.Factor <= MaxRankedLength {
			weights[fc.Factor] += fc.Count
		}
	}
	if friedmanEstimate >= 1 {
		weights[friedmanEstimate] += FriedmanBonus
	}

	ranked := make([]model.KeyLengthCandidate, 0, len(weights))
	for length, w := range weights {
		ranked = append(ranked, model.KeyLengthCandidate{Length: length, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight == ranked[j].Weight {
			return ranked[i].Length < ranked[j].Length
		}
		return ranked[i].Weight > ranked[j].Weight
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return WithFallback(ranked)
}

// WithFallback appends lengths 1..FallbackLengths that are not yet present.
func WithFallback(cands []model.KeyLengthCandidate) []model.KeyLengthCandidate {
	present := make(map[int]bool, len(cands))
	for _, c := range cands {
		present[c.Length] = true
	}
	out := append([]model.KeyLengthCandidate(nil), cands...)
	for l := 1; l <= FallbackLengths; l++ {
		if !present[l] {
			out = append(out, model.KeyLengthCandidate{Length: l})
		}
	}
	return out
}

// KeyLengths ranks the key lengths of normalised ciphertext using Kasiski
// distances over repeats of minRepeat..maxRepeat letters.
func KeyLengths(text string, minRepeat, maxRepeat, top int) []model.KeyLengthCandidate {
	hist := DivisorHistogram(RepeatedSubstringDistances(text, minRepeat, maxRepeat))
	return RankKeyLengths(hist, FriedmanEstimate(text), top)
}
