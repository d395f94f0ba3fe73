// Package logging builds the zerolog logger used by the CLI and the attack.
package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidLogOutput = errors.New("logging: unknown output format")
	ErrInvalidLogLevel  = errors.New("logging: unknown level")
)

// Config selects the level and output of the logger. Empty fields mean
// "info" and "console".
type Config struct {
	Level  string
	Output string
}

// New returns a logger writing to stderr, leaving stdout to command output.
func New(cfg Config) (*zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, w io.Writer) (*zerolog.Logger, error) {
	zerolog.DurationFieldUnit = time.Millisecond

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, ErrInvalidLogLevel
	}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "console", "":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "stderr":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	case "json":
		output = w
	default:
		return nil, ErrInvalidLogOutput
	}

	logger := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	return &logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
