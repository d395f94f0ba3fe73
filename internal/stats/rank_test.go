package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/model"
)

func TestRankKeyLengths(t *testing.T) {
	hist := []model.FactorCount{{Factor: 2, Count: 10}, {Factor: 4, Count: 10}, {Factor: 8, Count: 3}}

	got := RankKeyLengths(hist, 4, 6)
	want := []model.KeyLengthCandidate{
		{Length: 4, Weight: 12},
		{Length: 2, Weight: 10},
		{Length: 8, Weight: 3},
		{Length: 1},
		{Length: 3},
		{Length: 5},
	}
	assert.Equal(t, want, got)
}

func TestRankKeyLengthsTopAndFallback(t *testing.T) {
	hist := []model.FactorCount{{Factor: 7, Count: 9}, {Factor: 3, Count: 4}}

	got := RankKeyLengths(hist, 1, 1)
	lengths := make([]int, len(got))
	for i, c := range got {
		lengths[i] = c.Length
	}
	assert.Equal(t, []int{7, 1, 2, 3, 4, 5}, lengths)
}

func TestRankKeyLengthsIgnoresTailAndLongFactors(t *testing.T) {
	hist := []model.FactorCount{{Factor: 28, Count: 50}}
	for f := 2; f <= 21; f++ {
		hist = append(hist, model.FactorCount{Factor: f, Count: 1})
	}

	got := RankKeyLengths(hist, 1, 25)
	for _, c := range got {
		assert.NotEqual(t, 28, c.Length)
		// Only the first twenty histogram entries count.
		assert.NotEqual(t, 21, c.Length)
	}
}

func TestAnalyzePeriodicText(t *testing.T) {
	a := Analyze(strings.Repeat("abcde", 10), DefaultAnalysisConfig())

	assert.Equal(t, 50, a.Letters)
	require.NotEmpty(t, a.KeyLengths)
	assert.Equal(t, 5, a.KeyLengths[0].Length)
	require.NotEmpty(t, a.Histogram)
	assert.Equal(t, 5, a.Histogram[0].Factor)

	ic, ok := a.ColumnICFor(5)
	require.True(t, ok)
	assert.InDelta(t, 1.0, ic, 1e-9)
	_, ok = a.ColumnICFor(99)
	assert.False(t, ok)
}

func TestRenderAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderAnalysis(&buf, Analyze(strings.Repeat("ABCDE", 10), DefaultAnalysisConfig())))
	out := buf.String()
	for _, want := range []string{"Summary", "Letters: 50", "Candidate Key Lengths", "Divisor Histogram", "Repeated Substrings"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, RenderAnalysis(&buf, Analyze("123 !", DefaultAnalysisConfig())))
	assert.Equal(t, "No letters found.\n", buf.String())
}

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{{Label: "A", Value: 2}, {Label: "BB", Value: 1, Ref: 2}}
	require.NoError(t, RenderBars(&buf, "Title", bars, 40, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Title", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A  "))
	assert.Contains(t, lines[2], "│")
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Len(t, LetterBars([26]float64{}), 26)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{3, 3, 3}))
	assert.Equal(t, " @", Sparkline([]float64{0, 9}))

	var buf bytes.Buffer
	require.NoError(t, RenderScoreTraces(&buf, []ScoreTrace{{Restart: 0, Scores: []int{1, 4, 9}}}))
	assert.Contains(t, buf.String(), "Restart Traces")
	assert.Contains(t, buf.String(), " -@")
}

func TestSaveHistogramPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, SaveHistogramPlot(path, []model.FactorCount{{Factor: 3, Count: 4}, {Factor: 2, Count: 1}}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SaveHistogramPlot(path, nil))
}
