package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigenplay/internal/stats"
)

var (
	analyzeIn       string
	analyzePlot     string
	analyzeMinLen   int
	analyzeMaxLen   int
	analyzeTop      int
	analyzeNoCharts bool
	analyzeColor    bool
)

func newAnalyzeCmd() *cobra.Command {
	defaults := stats.DefaultAnalysisConfig()
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show coincidence, repeat and key length statistics of a ciphertext",
		Args:  cobra.NoArgs,
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeIn, "in", "", "ciphertext file (default stdin)")
	cmd.Flags().StringVar(&analyzePlot, "plot", "", "save the divisor histogram as an image (png, svg, pdf)")
	cmd.Flags().IntVar(&analyzeMinLen, "min-len", defaults.MinRepeat, "shortest repeated substring")
	cmd.Flags().IntVar(&analyzeMaxLen, "max-len", defaults.MaxRepeat, "longest repeated substring")
	cmd.Flags().IntVar(&analyzeTop, "top", defaults.Top, "ranked key lengths to show")
	cmd.Flags().BoolVar(&analyzeNoCharts, "no-charts", false, "skip the bar charts")
	cmd.Flags().BoolVar(&analyzeColor, "color", false, "force colored charts")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg := stats.DefaultAnalysisConfig()
	cfg.MinRepeat = analyzeMinLen
	cfg.MaxRepeat = analyzeMaxLen
	cfg.Top = analyzeTop
	if cfg.MinRepeat < 2 || cfg.MaxRepeat < cfg.MinRepeat {
		return fmt.Errorf("--min-len must be >= 2 and <= --max-len")
	}
	if cfg.Top < 1 {
		return fmt.Errorf("--top must be > 0")
	}

	text, err := readInput(cmd, analyzeIn)
	if err != nil {
		return err
	}
	a := stats.Analyze(text, cfg)
	w := cmd.OutOrStdout()
	if err := stats.RenderAnalysis(w, a); err != nil {
		return err
	}
	if a.Letters > 0 && !analyzeNoCharts {
		if err := stats.RenderBars(w, "Letter Frequencies (│ = English)", stats.LetterBars(a.Frequencies), 0, analyzeColor); err != nil {
			return err
		}
		if err := stats.RenderBars(w, "Divisor Histogram", stats.FactorBars(a.Histogram), 0, analyzeColor); err != nil {
			return err
		}
	}
	if analyzePlot != "" {
		if err := stats.SaveHistogramPlot(analyzePlot, a.Histogram); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Histogram saved to %s\n", analyzePlot); err != nil {
			return err
		}
	}
	return nil
}
