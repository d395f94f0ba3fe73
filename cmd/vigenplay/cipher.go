package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigenplay/internal/attack"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/generator"
	"github.com/verte-zerg/vigenplay/internal/model"
	"github.com/verte-zerg/vigenplay/internal/tui"
)

const defaultKeyLength = 12

var (
	cipherDigramKey string
	cipherSubstKey  string
	cipherIn        string
	cipherOut       string

	knownDigramKey string
	knownPlain     string
	knownOffset    int
	knownKeyLength int
	knownIn        string

	keygenLength int
	keygenDigram bool
	keygenSeed   int64
)

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with the digram and substitution keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCipherCmd(cmd, tui.OpEncrypt)
		},
	}
	addCipherFlags(cmd)
	return cmd
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text with the digram and substitution keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCipherCmd(cmd, tui.OpDecrypt)
		},
	}
	addCipherFlags(cmd)
	return cmd
}

func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cipherDigramKey, "digram-key", "", "digram table key")
	cmd.Flags().StringVar(&cipherSubstKey, "key", "", fmt.Sprintf("substitution key (at least %d letters)", cipher.MinSubstitutionKeyLength))
	cmd.Flags().StringVar(&cipherIn, "in", "", "input file (default stdin)")
	cmd.Flags().StringVar(&cipherOut, "out", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("key")
}

func runCipherCmd(cmd *cobra.Command, op tui.Operation) error {
	started := time.Now()
	text, err := readInput(cmd, cipherIn)
	if err != nil {
		return err
	}

	var out string
	if op == tui.OpEncrypt {
		out, err = cipher.Encrypt(text, cipherDigramKey, cipherSubstKey)
	} else {
		out, err = cipher.Decrypt(text, cipherDigramKey, cipherSubstKey)
	}
	if err != nil {
		if errors.Is(err, cipher.ErrWeakKey) {
			return fmt.Errorf("--key needs at least %d letters: %w", cipher.MinSubstitutionKeyLength, err)
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if err := writeOutput(cmd, cipherOut, out); err != nil {
		return err
	}

	recordRun(cmd.Context(), model.RunRecord{
		StartedAt:       started,
		EndedAt:         time.Now(),
		Operation:       string(op),
		DigramKey:       normalizedKey(cipherDigramKey),
		SubstitutionKey: normalizedKey(cipherSubstKey),
		InputPath:       cipherIn,
		OutputPath:      cipherOut,
		ElapsedMs:       time.Since(started).Milliseconds(),
		Preview:         tui.Preview(out),
	}, nil)
	return nil
}

// recordRun appends to the run log unless disabled. Failures are reported
// but do not fail the command.
func recordRun(ctx context.Context, run model.RunRecord, trials []model.Trial) {
	st, err := openRunLog()
	if err != nil {
		logErrf("%v\n", err)
		return
	}
	if st == nil {
		return
	}
	defer closeRunLog(st)
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := st.InsertRun(ctx, run, trials); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
}

func newKnownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "known",
		Short: "Derive substitution key letters from a known plaintext fragment",
		Args:  cobra.NoArgs,
		RunE:  runKnownCmd,
	}
	cmd.Flags().StringVar(&knownDigramKey, "digram-key", "", "digram table key")
	cmd.Flags().StringVar(&knownPlain, "plain", "", "known plaintext fragment")
	cmd.Flags().IntVar(&knownOffset, "offset", 0, "letter offset of the fragment in the ciphertext")
	cmd.Flags().IntVar(&knownKeyLength, "key-length", 0, "substitution key length, when known")
	cmd.Flags().StringVar(&knownIn, "in", "", "ciphertext file (default stdin)")
	_ = cmd.MarkFlagRequired("plain")
	return cmd
}

func runKnownCmd(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd, knownIn)
	if err != nil {
		return err
	}
	frag, err := attack.RecoverKeyFragment(text, knownPlain, knownDigramKey, knownOffset)
	if err != nil {
		return fmt.Errorf("failed to recover key fragment: %w", err)
	}
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "Key fragment: %s\n", frag); err != nil {
		return err
	}
	if knownKeyLength <= 0 {
		return nil
	}
	phase, err := attack.KeyPhase(knownOffset, knownKeyLength)
	if err != nil {
		return err
	}
	key, err := attack.AssembleKey(frag, knownOffset, knownKeyLength)
	if err != nil {
		return fmt.Errorf("failed to assemble key: %w", err)
	}
	_, err = fmt.Fprintf(w, "Starts at key position: %d\nPartial key: %s\n", phase, key)
	return err
}

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate random keys",
		Args:  cobra.NoArgs,
		RunE:  runKeygenCmd,
	}
	cmd.Flags().IntVar(&keygenLength, "length", defaultKeyLength, "substitution key length")
	cmd.Flags().BoolVar(&keygenDigram, "digram", false, "also generate a full digram key table")
	cmd.Flags().Int64Var(&keygenSeed, "seed", 0, "random seed (0 = time based)")
	return cmd
}

func runKeygenCmd(cmd *cobra.Command, _ []string) error {
	if keygenLength < cipher.MinSubstitutionKeyLength {
		return fmt.Errorf("--length must be >= %d", cipher.MinSubstitutionKeyLength)
	}
	gen := generator.New()
	if keygenSeed != 0 {
		gen = generator.NewWithSeed(keygenSeed)
	}
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "Substitution key: %s\n", gen.SubstitutionKey(keygenLength)); err != nil {
		return err
	}
	if !keygenDigram {
		return nil
	}
	key := gen.DigramKey()
	_, err := fmt.Fprintf(w, "Digram key: %s\n%s\n", key, cipher.BuildTable(key).Grid())
	return err
}
