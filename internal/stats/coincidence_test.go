package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/model"
)

func TestIndexOfCoincidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty", text: "", want: 0},
		{name: "single letter", text: "A", want: 0},
		{name: "repeated letter", text: "AAAA", want: 1},
		{name: "distinct letters", text: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", want: 0},
		{name: "two pairs", text: "AABB", want: 4.0 / 12.0},
		{name: "lower case", text: "aaaa", want: 1},
		{name: "punctuated", text: "a-a, B b!", want: 4.0 / 12.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IndexOfCoincidence(tt.text), 1e-9)
		})
	}
}

func TestFriedmanEstimateClamped(t *testing.T) {
	texts := []string{
		"",
		"A",
		"AAAA",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG",
		strings.Repeat("LXFOPVEFRNHR", 8),
	}
	for _, text := range texts {
		est := FriedmanEstimate(text)
		assert.GreaterOrEqual(t, est, 1, text)
		assert.LessOrEqual(t, est, 25, text)
	}
	assert.Equal(t, 1, FriedmanEstimate("AAAA"))
	assert.Equal(t, FriedmanEstimate(strings.Repeat("LXFOPVEFRNHR", 8)), FriedmanEstimate(strings.Repeat("lxf op-vef rnhr ", 8)))
}

func TestLetterFrequencies(t *testing.T) {
	freqs := LetterFrequencies("AABZ")
	assert.InDelta(t, 0.5, freqs[0], 1e-9)
	assert.InDelta(t, 0.25, freqs[1], 1e-9)
	assert.InDelta(t, 0.25, freqs[25], 1e-9)

	var zero [26]float64
	assert.Equal(t, zero, LetterFrequencies(""))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"ADG", "BE", "CF"}, Columns("ABCDEFG", 3))
	assert.Nil(t, Columns("ABC", 0))
	assert.InDelta(t, 1.0, AverageColumnIC(strings.Repeat("ABC", 5), 3), 1e-9)
}

func TestRepeatedSubstringDistances(t *testing.T) {
	dists := RepeatedSubstringDistances("ABCABC", 3, 3)
	assert.Equal(t, map[string][]int{"ABC": {3}}, dists)

	dists = RepeatedSubstringDistances("ABCXABCYABC", 3, 5)
	assert.Equal(t, []int{4, 8, 4}, dists["ABC"])
	assert.NotContains(t, dists, "ABCX")

	dists = RepeatedSubstringDistances("abc ABC", 3, 3)
	assert.Equal(t, map[string][]int{"ABC": {3}}, dists)
}

func TestDivisorHistogram(t *testing.T) {
	hist := DivisorHistogram(map[string][]int{"ABC": {3}})
	assert.Equal(t, []model.FactorCount{{Factor: 3, Count: 1}}, hist)

	hist = DivisorHistogram(map[string][]int{"XYZ": {12}, "QRS": {6}})
	require.NotEmpty(t, hist)
	// 2, 3 and 6 divide both distances; ties go to the smaller factor.
	assert.Equal(t, model.FactorCount{Factor: 2, Count: 2}, hist[0])
	assert.Equal(t, model.FactorCount{Factor: 3, Count: 2}, hist[1])
	assert.Equal(t, model.FactorCount{Factor: 6, Count: 2}, hist[2])
	for _, fc := range hist {
		assert.Positive(t, fc.Count)
		assert.GreaterOrEqual(t, fc.Factor, MinFactor)
		assert.LessOrEqual(t, fc.Factor, MaxFactor)
	}

	assert.Empty(t, DivisorHistogram(nil))
}
