package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ScoreTrace is the best score after each improvement of one restart.
type ScoreTrace struct {
	Restart int
	Scores  []int
}

// RenderScoreTraces prints one sparkline row per restart and the final scores.
func RenderScoreTraces(w io.Writer, traces []ScoreTrace) error {
	if len(traces) == 0 {
		return nil
	}
	headers := []string{"Restart", "Steps", "Final", "Trace"}
	rows := make([][]string, 0, len(traces))
	for _, tr := range traces {
		values := make([]float64, len(tr.Scores))
		final := "-"
		for i, s := range tr.Scores {
			values[i] = float64(s)
		}
		if n := len(tr.Scores); n > 0 {
			final = strconv.Itoa(tr.Scores[n-1])
		}
		rows = append(rows, []string{strconv.Itoa(tr.Restart), strconv.Itoa(len(tr.Scores)), final, Sparkline(values)})
	}
	if err := renderSection(w, "Restart Traces", headers, rows, map[int]bool{0: true, 1: true, 2: true}); err != nil {
		return fmt.Errorf("failed to render traces: %w", err)
	}
	return nil
}
