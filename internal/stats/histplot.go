package stats

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/verte-zerg/vigenplay/internal/model"
)

// SaveHistogramPlot writes the divisor histogram as a bar chart. The image
// format follows the file extension (png, svg, pdf, ...).
func SaveHistogramPlot(path string, hist []model.FactorCount) error {
	if len(hist) == 0 {
		return fmt.Errorf("divisor histogram is empty")
	}
	sorted := append([]model.FactorCount(nil), hist...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Factor < sorted[j].Factor })

	values := make(plotter.Values, len(sorted))
	labels := make([]string, len(sorted))
	for i, fc := range sorted {
		values[i] = float64(fc.Count)
		labels[i] = strconv.Itoa(fc.Factor)
	}

	p := plot.New()
	p.Title.Text = "Kasiski divisor histogram"
	p.X.Label.Text = "Factor"
	p.Y.Label.Text = "Distances divided"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
