package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/model"
)

const (
	CiphertextFile = "ciphertext.txt"
	PlaintextFile  = "plaintext.txt"
	previewLetters = 60
)

// Operation is a menu action that transforms a file.
type Operation string

const (
	OpEncrypt Operation = "encrypt"
	OpDecrypt Operation = "decrypt"
)

// RunRecorder stores finished runs; *store.Store satisfies it.
type RunRecorder interface {
	InsertRun(ctx context.Context, run model.RunRecord, trials []model.Trial) (string, error)
}

// Session holds the files the menu works on. Encrypt reads InputPath and
// writes ciphertext.txt next to it; decrypt reads that ciphertext and writes
// plaintext.txt.
type Session struct {
	InputPath string
	Recorder  RunRecorder
}

// Outcome describes a finished operation.
type Outcome struct {
	Operation  Operation
	InputPath  string
	OutputPath string
	Output     string
	RunID      string
}

func (s Session) dir() string {
	return filepath.Dir(s.InputPath)
}

// Run performs op with the given keys and records it when a recorder is set.
// A failure to record is returned alongside the successful outcome.
func (s Session) Run(ctx context.Context, op Operation, digramKey, substitutionKey string) (Outcome, error) {
	started := time.Now()
	out := Outcome{Operation: op}
	switch op {
	case OpEncrypt:
		out.InputPath = s.InputPath
		out.OutputPath = filepath.Join(s.dir(), CiphertextFile)
	case OpDecrypt:
		out.InputPath = filepath.Join(s.dir(), CiphertextFile)
		out.OutputPath = filepath.Join(s.dir(), PlaintextFile)
	default:
		return Outcome{}, fmt.Errorf("unknown operation %q", op)
	}

	data, err := os.ReadFile(out.InputPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read input: %w", err)
	}
	text := alphabet.Normalize(string(data))
	if op == OpEncrypt {
		out.Output, err = cipher.Encrypt(text, digramKey, substitutionKey)
	} else {
		out.Output, err = cipher.Decrypt(text, digramKey, substitutionKey)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	if err := os.WriteFile(out.OutputPath, []byte(out.Output), 0o644); err != nil {
		return Outcome{}, fmt.Errorf("failed to write output: %w", err)
	}

	if s.Recorder == nil {
		return out, nil
	}
	ended := time.Now()
	out.RunID, err = s.Recorder.InsertRun(ctx, model.RunRecord{
		StartedAt:       started,
		EndedAt:         ended,
		Operation:       string(op),
		DigramKey:       alphabet.Normalize(digramKey),
		SubstitutionKey: alphabet.Normalize(substitutionKey),
		InputPath:       out.InputPath,
		OutputPath:      out.OutputPath,
		ElapsedMs:       ended.Sub(started).Milliseconds(),
		Preview:         Preview(out.Output),
	}, nil)
	if err != nil {
		return out, fmt.Errorf("failed to record run: %w", err)
	}
	return out, nil
}

// Preview cuts text to the first letters shown in listings.
func Preview(text string) string {
	if len(text) <= previewLetters {
		return text
	}
	return text[:previewLetters] + "..."
}
