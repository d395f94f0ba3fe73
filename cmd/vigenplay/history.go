package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigenplay/internal/model"
	"github.com/verte-zerg/vigenplay/internal/stats"
)

var (
	historyLast  int
	historyOp    string
	historySince string
	historyRun   string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the run log",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 20, "limit to last N runs (0 = all)")
	cmd.Flags().StringVar(&historyOp, "op", "", "operation filter (encrypt, decrypt, break)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&historyRun, "run", "", "show the key lengths tried by one run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter := model.RunFilter{Operation: historyOp, Last: historyLast}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}

	st, err := openRunLog()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("run log is disabled by --no-log")
	}
	defer closeRunLog(st)

	w := cmd.OutOrStdout()
	if historyRun != "" {
		trials, err := st.ListTrials(cmd.Context(), historyRun)
		if err != nil {
			return fmt.Errorf("failed to load trials: %w", err)
		}
		rows := make([][]string, 0, len(trials))
		for _, tr := range trials {
			score := strconv.Itoa(tr.Score)
			if tr.Skipped {
				score = "skipped"
			}
			rows = append(rows, []string{strconv.Itoa(tr.KeyLength), tr.SubstitutionKey, score})
		}
		return stats.RenderTable(w, "Run "+historyRun, []string{"Length", "Key", "Score"}, rows, map[int]bool{0: true, 2: true})
	}

	runs, err := st.ListRuns(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.ID,
			r.Operation,
			r.SubstitutionKey,
			strconv.Itoa(r.Score),
			strconv.FormatInt(r.ElapsedMs, 10),
			r.Preview,
		})
	}
	return stats.RenderTable(w, "Runs", []string{"Ended", "ID", "Op", "Key", "Score", "Ms", "Preview"}, rows, map[int]bool{4: true, 5: true})
}
