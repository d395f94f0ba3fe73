// Package attack chains the statistics, the column key recovery and the key
// table search into a ciphertext-only attack on the composed cipher, and
// derives key fragments from known plaintext.
package attack

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/breaker"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/metrics"
	"github.com/verte-zerg/vigenplay/internal/model"
	"github.com/verte-zerg/vigenplay/internal/stats"
	"github.com/verte-zerg/vigenplay/internal/wordlist"
)

const (
	// DefaultTimeBudget bounds the time spent starting new key lengths.
	DefaultTimeBudget = 120 * time.Second
	// DefaultTop is the number of ranked key lengths tried before the fallbacks.
	DefaultTop = 6
)

// ErrEmptyCiphertext is returned when the ciphertext has no letters.
var ErrEmptyCiphertext = errors.New("ciphertext has no letters")

// DigramBreaker searches for the digram key table of an intermediate text.
type DigramBreaker interface {
	Break(ctx context.Context, ciphertext string) (breaker.Result, error)
}

// BreakerFactory builds the breaker for one candidate key length.
type BreakerFactory func(opts breaker.Options, rng *rand.Rand) DigramBreaker

// DefaultBreakerFactory returns breaker.New.
func DefaultBreakerFactory(opts breaker.Options, rng *rand.Rand) DigramBreaker {
	return breaker.New(opts, rng)
}

// Options controls one attack.
type Options struct {
	// TimeBudget is checked before each candidate length; a running key
	// table search is never interrupted by it.
	TimeBudget time.Duration
	Top        int
	MinRepeat  int
	MaxRepeat  int
	Breaker    breaker.Options
	Seed       int64
	// Dictionary, when set, rates the readability of the best plaintext.
	Dictionary *wordlist.Dictionary
}

// DefaultOptions returns the settings of a plain `break` run.
func DefaultOptions() Options {
	analysis := stats.DefaultAnalysisConfig()
	return Options{
		TimeBudget: DefaultTimeBudget,
		Top:        DefaultTop,
		MinRepeat:  analysis.MinRepeat,
		MaxRepeat:  analysis.MaxRepeat,
		Breaker:    breaker.DefaultOptions(),
	}
}

// Attacker runs ciphertext-only attacks.
type Attacker struct {
	clock      clockwork.Clock
	logger     *zerolog.Logger
	metrics    *metrics.Collector
	newBreaker BreakerFactory
}

// NewAttacker wires an Attacker. collector may be nil; a nil factory means
// DefaultBreakerFactory.
func NewAttacker(
	clock clockwork.Clock,
	logger *zerolog.Logger,
	collector *metrics.Collector,
	factory BreakerFactory,
) *Attacker {
	if factory == nil {
		factory = DefaultBreakerFactory
	}
	return &Attacker{
		clock:      clock,
		logger:     logger,
		metrics:    collector,
		newBreaker: factory,
	}
}

// Run ranks key lengths and, for each one while the budget lasts, recovers a
// substitution key, peels it off and searches for the digram key table. The
// best scoring candidate is returned; it may be unreadable. Cancelling ctx
// stops the attack between candidates and keeps the best so far.
func (a *Attacker) Run(ctx context.Context, ciphertext string, opts Options) (model.Candidate, error) {
	ct := alphabet.Normalize(ciphertext)
	if ct == "" {
		return model.Candidate{}, ErrEmptyCiphertext
	}
	opts = withDefaults(opts)

	start := a.clock.Now()
	rng := rand.New(rand.NewSource(opts.Seed))
	lengths := stats.KeyLengths(ct, opts.MinRepeat, opts.MaxRepeat, opts.Top)
	if a.metrics != nil {
		a.metrics.AttackRuns.Inc()
	}
	a.logger.Info().
		Int("letters", len(ct)).
		Int("candidates", len(lengths)).
		Dur("budget", opts.TimeBudget).
		Msg("Starting attack")

	var best model.Candidate
	var trials []model.Trial
	found := false
	tried := 0
	for _, kl := range lengths {
		if ctx.Err() != nil {
			a.logger.Info().Int("tried", tried).Msg("Attack cancelled")
			break
		}
		if a.clock.Since(start) > opts.TimeBudget {
			a.logger.Info().Int("tried", tried).Msg("Time budget exhausted")
			break
		}
		tried++
		candStart := a.clock.Now()

		key := RecoverSubstitutionKey(ct, kl.Length)
		intermediate, err := cipher.DecryptSubstitution(ct, key)
		if err != nil {
			a.logger.Warn().Err(err).Int("keylen", kl.Length).Msg("Unable to peel substitution layer")
			continue
		}
		if len(intermediate)%2 != 0 {
			a.logger.Warn().Int("keylen", kl.Length).Msg("Skipping odd length intermediate text")
			trials = append(trials, model.Trial{KeyLength: kl.Length, SubstitutionKey: key, Skipped: true})
			continue
		}

		res, err := a.newBreaker(opts.Breaker, rand.New(rand.NewSource(rng.Int63()))).Break(ctx, intermediate)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			a.logger.Warn().Err(err).Int("keylen", kl.Length).Msg("Key table search failed")
			trials = append(trials, model.Trial{KeyLength: kl.Length, SubstitutionKey: key, Skipped: true})
			continue
		}
		a.observe(res, a.clock.Since(candStart))
		a.logger.Info().
			Int("trial", tried).
			Int("keylen", kl.Length).
			Str("key", key).
			Int("score", res.Score).
			Msg("Tried key length")
		trials = append(trials, model.Trial{KeyLength: kl.Length, SubstitutionKey: key, Score: res.Score})

		if !found || res.Score > best.Score {
			found = true
			best = model.Candidate{
				KeyLength:       kl.Length,
				SubstitutionKey: key,
				DigramTable:     res.Table.String(),
				Plaintext:       cipher.StripPadding(res.Plaintext),
				Score:           res.Score,
				Elapsed:         a.clock.Since(start),
				Traces:          restartTraces(res),
			}
		}
	}

	best.Tried = tried
	best.Trials = trials
	if found && opts.Dictionary != nil {
		best.Readability = opts.Dictionary.Readability(best.Plaintext)
	}
	if a.metrics != nil && found {
		a.metrics.AttackBestScore.Set(float64(best.Score))
	}
	a.logger.Info().
		Int("tried", tried).
		Int("score", best.Score).
		Str("key", best.SubstitutionKey).
		Dur("elapsed", a.clock.Since(start)).
		Msg("Attack finished")
	return best, nil
}

func (a *Attacker) observe(res breaker.Result, took time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.AttackCandidates.Inc()
	a.metrics.BreakerRestarts.Add(float64(len(res.Restarts)))
	a.metrics.BreakerIterations.Add(float64(res.Iterations))
	a.metrics.CandidateDurations.Observe(took.Seconds())
}

func restartTraces(res breaker.Result) [][]int {
	var traces [][]int
	for _, r := range res.Restarts {
		if len(r.Improvements) == 0 {
			continue
		}
		scores := make([]int, len(r.Improvements))
		for i, imp := range r.Improvements {
			scores[i] = imp.Score
		}
		traces = append(traces, scores)
	}
	return traces
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = def.TimeBudget
	}
	if opts.Top <= 0 {
		opts.Top = def.Top
	}
	if opts.MinRepeat <= 0 {
		opts.MinRepeat = def.MinRepeat
	}
	if opts.MaxRepeat < opts.MinRepeat {
		opts.MaxRepeat = max(def.MaxRepeat, opts.MinRepeat)
	}
	return opts
}
