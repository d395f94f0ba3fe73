package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigenplay/internal/attack"
	"github.com/verte-zerg/vigenplay/internal/breaker"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/config"
	"github.com/verte-zerg/vigenplay/internal/metrics"
	"github.com/verte-zerg/vigenplay/internal/model"
	"github.com/verte-zerg/vigenplay/internal/stats"
	"github.com/verte-zerg/vigenplay/internal/tui"
	"github.com/verte-zerg/vigenplay/internal/wordlist"
)

var (
	breakIn          string
	breakOut         string
	breakBudget      time.Duration
	breakRestarts    int
	breakIterations  int
	breakWorkers     int
	breakTop         int
	breakSeed        int64
	breakDictionary  string
	breakMetricsFile string
	breakTrace       bool
)

func newBreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Recover keys and plaintext from ciphertext alone",
		Args:  cobra.NoArgs,
		RunE:  runBreakCmd,
	}
	cmd.Flags().StringVar(&breakIn, "in", "", "ciphertext file (default stdin)")
	cmd.Flags().StringVar(&breakOut, "out", "", "write the recovered plaintext to this file")
	cmd.Flags().DurationVar(&breakBudget, "budget", attack.DefaultTimeBudget, "time budget, checked between key lengths")
	cmd.Flags().IntVar(&breakRestarts, "restarts", breaker.DefaultRestarts, "key table search restarts per key length")
	cmd.Flags().IntVar(&breakIterations, "iterations", breaker.DefaultIterations, "mutations per restart")
	cmd.Flags().IntVar(&breakWorkers, "workers", 0, "parallel restarts (0 = number of CPUs)")
	cmd.Flags().IntVar(&breakTop, "top", attack.DefaultTop, "ranked key lengths tried before the fallbacks")
	cmd.Flags().Int64Var(&breakSeed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&breakDictionary, "dictionary", "", "word list used to rate the plaintext")
	cmd.Flags().StringVar(&breakMetricsFile, "metrics-file", "", "write prometheus metrics to this file")
	cmd.Flags().BoolVar(&breakTrace, "trace", false, "print the score trace of each restart of the best key length")
	return cmd
}

func runBreakCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, fileCfg)
	if err != nil {
		return err
	}

	cfg := model.BreakConfig{
		TimeBudget: breakBudget,
		Restarts:   breakRestarts,
		Iterations: breakIterations,
		Workers:    breakWorkers,
		Top:        breakTop,
		Seed:       breakSeed,
		Dictionary: breakDictionary,
	}
	if err := config.ApplyBreak(&cfg, fileCfg.Break, cmd.Flags().Changed); err != nil {
		return err
	}
	if err := config.ValidateBreak(cfg); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	dict, err := loadDictionary(cfg.Dictionary, logger)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, breakIn)
	if err != nil {
		return err
	}

	opts := attack.DefaultOptions()
	opts.TimeBudget = cfg.TimeBudget
	opts.Top = cfg.Top
	opts.Seed = cfg.Seed
	opts.Dictionary = dict
	opts.Breaker.Restarts = cfg.Restarts
	opts.Breaker.Iterations = cfg.Iterations
	opts.Breaker.Workers = cfg.Workers
	opts.Breaker.Trace = breakTrace

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collector := metrics.New()
	attacker := attack.NewAttacker(clockwork.NewRealClock(), logger, collector, nil)
	logger.Debug().Int64("seed", cfg.Seed).Msg("Seeded attack")

	started := time.Now()
	best, err := attacker.Run(ctx, text, opts)
	if err != nil {
		return fmt.Errorf("failed to break ciphertext: %w", err)
	}

	if err := renderBreakResult(cmd.OutOrStdout(), best, breakTrace); err != nil {
		return err
	}
	if breakOut != "" {
		if err := writeOutput(cmd, breakOut, best.Plaintext); err != nil {
			return err
		}
	}
	if breakMetricsFile != "" {
		if err := collector.WriteTextfile(breakMetricsFile); err != nil {
			return err
		}
	}

	recordRun(ctx, model.RunRecord{
		StartedAt:       started,
		EndedAt:         time.Now(),
		Operation:       "break",
		DigramKey:       best.DigramTable,
		SubstitutionKey: best.SubstitutionKey,
		InputPath:       breakIn,
		OutputPath:      breakOut,
		Score:           best.Score,
		ElapsedMs:       time.Since(started).Milliseconds(),
		Preview:         tui.Preview(best.Plaintext),
	}, best.Trials)
	return nil
}

// loadDictionary loads path, or the default word list when path is empty
// and that file exists. No dictionary is not an error.
func loadDictionary(path string, logger *zerolog.Logger) (*wordlist.Dictionary, error) {
	if path == "" {
		path = config.DefaultDictionaryPath()
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
	}
	dict, err := wordlist.LoadDictionary(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("words", dict.Len()).Msg("Loaded dictionary")
	return dict, nil
}

func renderBreakResult(w io.Writer, best model.Candidate, withTraces bool) error {
	rows := make([][]string, 0, len(best.Trials))
	for i, tr := range best.Trials {
		score := strconv.Itoa(tr.Score)
		if tr.Skipped {
			score = "skipped"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(tr.KeyLength), tr.SubstitutionKey, score})
	}
	if err := stats.RenderTable(w, "Trials", []string{"Trial", "Length", "Key", "Score"}, rows, map[int]bool{0: true, 1: true, 3: true}); err != nil {
		return err
	}
	if best.DigramTable == "" {
		_, err := fmt.Fprintf(w, "No candidate found after %d key lengths.\n", best.Tried)
		return err
	}

	lines := []string{
		"Best Candidate",
		fmt.Sprintf("Key length: %d", best.KeyLength),
		fmt.Sprintf("Substitution key: %s", best.SubstitutionKey),
		fmt.Sprintf("Digram table: %s", best.DigramTable),
		fmt.Sprintf("Score: %d", best.Score),
		fmt.Sprintf("Found after: %s", best.Elapsed.Round(time.Millisecond)),
	}
	if best.Readability > 0 {
		lines = append(lines, fmt.Sprintf("Readability: %.1f%%", best.Readability*100))
	}
	lines = append(lines, "", cipher.BuildTable(best.DigramTable).Grid(), "", best.Plaintext, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if !withTraces {
		return nil
	}
	traces := make([]stats.ScoreTrace, len(best.Traces))
	for i, scores := range best.Traces {
		traces[i] = stats.ScoreTrace{Restart: i, Scores: scores}
	}
	return stats.RenderScoreTraces(w, traces)
}
