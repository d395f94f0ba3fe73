package stats

import (
	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/model"
)

// ColumnIC is the average column IC for one assumed key length.
type ColumnIC struct {
	Length int
	IC     float64
}

// Analysis bundles the statistics computed for a ciphertext.
type Analysis struct {
	Letters     int
	IC          float64
	Friedman    int
	Distances   map[string][]int
	Histogram   []model.FactorCount
	KeyLengths  []model.KeyLengthCandidate
	ColumnICs   []ColumnIC
	Frequencies [alphabet.Size]float64
}

// DefaultAnalysisConfig returns the repeat range and limits used by the attack.
func DefaultAnalysisConfig() model.AnalysisConfig {
	return model.AnalysisConfig{
		MinRepeat:       3,
		MaxRepeat:       5,
		MaxColumnLength: 20,
		Top:             6,
	}
}

// Analyze normalises text and computes every statistic.
func Analyze(text string, cfg model.AnalysisConfig) Analysis {
	text = alphabet.Normalize(text)
	est, ic := friedman(text)
	dists := RepeatedSubstringDistances(text, cfg.MinRepeat, cfg.MaxRepeat)
	hist := DivisorHistogram(dists)

	colICs := make([]ColumnIC, 0, cfg.MaxColumnLength)
	for l := 1; l <= cfg.MaxColumnLength && l <= len(text); l++ {
		colICs = append(colICs, ColumnIC{Length: l, IC: AverageColumnIC(text, l)})
	}

	return Analysis{
		Letters:     len(text),
		IC:          ic,
		Friedman:    est,
		Distances:   dists,
		Histogram:   hist,
		KeyLengths:  RankKeyLengths(hist, est, cfg.Top),
		ColumnICs:   colICs,
		Frequencies: LetterFrequencies(text),
	}
}

// ColumnICFor returns the average column IC recorded for length, if any.
func (a Analysis) ColumnICFor(length int) (float64, bool) {
	for _, c := range a.ColumnICs {
		if c.Length == length {
			return c.IC, true
		}
	}
	return 0, false
}
