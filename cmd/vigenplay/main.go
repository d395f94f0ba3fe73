// Package main provides the CLI entrypoint for vigenplay.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/attack"
	"github.com/verte-zerg/vigenplay/internal/breaker"
	"github.com/verte-zerg/vigenplay/internal/config"
	"github.com/verte-zerg/vigenplay/internal/logging"
	"github.com/verte-zerg/vigenplay/internal/store"
	"github.com/verte-zerg/vigenplay/internal/tui"
)

const defaultInputFile = "input.txt"

var (
	logLevel  string
	logOutput string
	noLog     bool

	interactiveInput string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vigenplay",
		Short:         "Digram + substitution cipher and its cryptanalysis",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runInteractiveCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "console", "log output (console, stderr, json)")
	rootCmd.PersistentFlags().BoolVar(&noLog, "no-log", false, "do not record runs in the run log")
	rootCmd.Flags().StringVar(&interactiveInput, "in", defaultInputFile, "input file for the interactive menu")

	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newBreakCmd())
	rootCmd.AddCommand(newKnownCmd())
	rootCmd.AddCommand(newKeygenCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Encrypt or decrypt a file from a menu",
		Args:  cobra.NoArgs,
		RunE:  runInteractiveCmd,
	}
	cmd.Flags().StringVar(&interactiveInput, "in", defaultInputFile, "input file")
	return cmd
}

func runInteractiveCmd(_ *cobra.Command, _ []string) error {
	input, err := filepath.Abs(interactiveInput)
	if err != nil {
		return fmt.Errorf("failed to resolve input path: %w", err)
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %s is missing; create it next to where you run vigenplay", input)
	}

	session := tui.Session{InputPath: input}
	st, err := openRunLog()
	if err != nil {
		return err
	}
	if st != nil {
		defer closeRunLog(st)
		session.Recorder = st
	}

	program := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template(configDefaults())), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func configDefaults() config.Defaults {
	return config.Defaults{
		TimeBudget: attack.DefaultTimeBudget,
		Restarts:   breaker.DefaultRestarts,
		Iterations: breaker.DefaultIterations,
		Top:        attack.DefaultTop,
		LogLevel:   "info",
		LogOutput:  "console",
	}
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

// newLogger applies the [log] section unless the flags were given.
func newLogger(cmd *cobra.Command, fileCfg config.FileConfig) (*zerolog.Logger, error) {
	level, output := logLevel, logOutput
	if fileCfg.Log.Level != nil && !cmd.Flags().Changed("log-level") {
		level = *fileCfg.Log.Level
	}
	if fileCfg.Log.Output != nil && !cmd.Flags().Changed("log-output") {
		output = *fileCfg.Log.Output
	}
	logger, err := logging.New(logging.Config{Level: level, Output: output})
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return logger, nil
}

// openRunLog returns nil when run logging is disabled.
func openRunLog() (*store.Store, error) {
	if noLog {
		return nil, nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeRunLog(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

// readInput reads the file at path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// writeOutput writes text to the file at path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func normalizedKey(key string) string {
	return alphabet.Normalize(key)
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
