// Package model defines shared data structures.
package model

import "time"

// BreakConfig defines settings for a ciphertext-only attack.
type BreakConfig struct {
	TimeBudget time.Duration `validate:"gt=0"`
	Restarts   int           `validate:"gte=1,lte=100000"`
	Iterations int           `validate:"gte=1,lte=10000000"`
	Workers    int           `validate:"gte=0,lte=1024"`
	Top        int           `validate:"gte=1,lte=25"`
	Seed       int64
	Dictionary string
}

// AnalysisConfig defines options for the statistical analysis.
type AnalysisConfig struct {
	MinRepeat       int `validate:"gte=2"`
	MaxRepeat       int `validate:"gtefield=MinRepeat,lte=20"`
	MaxColumnLength int `validate:"gte=1,lte=60"`
	Top             int `validate:"gte=1,lte=25"`
}

// FactorCount is one divisor histogram entry.
type FactorCount struct {
	Factor int
	Count  int
}

// KeyLengthCandidate is a candidate substitution key length with its support.
type KeyLengthCandidate struct {
	Length int
	Weight int
}

// Candidate is a decryption hypothesis produced by the attack.
type Candidate struct {
	KeyLength       int
	SubstitutionKey string
	DigramTable     string
	Plaintext       string
	Score           int
	Elapsed         time.Duration
	Tried           int
	Readability     float64
	Trials          []Trial
	// Traces holds, per restart of the winning key table search, the best
	// score after each improvement. Only filled when tracing.
	Traces [][]int
}

// Trial is the outcome of one candidate key length.
type Trial struct {
	KeyLength       int
	SubstitutionKey string
	Score           int
	// Skipped is set when no key table search ran for this length.
	Skipped bool
}

// RunRecord is one entry of the run log.
type RunRecord struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	Operation       string
	DigramKey       string
	SubstitutionKey string
	InputPath       string
	OutputPath      string
	Score           int
	ElapsedMs       int64
	Preview         string
}

// RunFilter narrows run log listings.
type RunFilter struct {
	Operation string
	Since     *time.Time
	Last      int
}
