// Package breaker recovers a digram key table from digram ciphertext by
// hill climbing from many random starting tables.
package breaker

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/generator"
)

// Search defaults.
const (
	// DefaultRestarts is the number of random starting tables.
	DefaultRestarts = 30
	// DefaultIterations is the number of mutations per restart.
	DefaultIterations = 1500
	// DefaultRandomAcceptance is the chance of keeping a worse table.
	DefaultRandomAcceptance = 0.001
)

// Options controls the search.
type Options struct {
	Restarts   int
	Iterations int
	// Workers bounds the restarts running at once; 0 means GOMAXPROCS.
	Workers int
	// RandomAcceptance is the chance of keeping a worse table.
	RandomAcceptance float64
	// Trace records every improvement of each restart's best score.
	Trace bool
}

// DefaultOptions returns the settings used by the attack.
func DefaultOptions() Options {
	return Options{
		Restarts:         DefaultRestarts,
		Iterations:       DefaultIterations,
		RandomAcceptance: DefaultRandomAcceptance,
	}
}

// Improvement is a new best score reached at an iteration; iteration 0 is
// the random starting table.
type Improvement struct {
	Iteration int
	Score     int
}

// RestartResult is the best state one restart reached.
type RestartResult struct {
	Index        int
	Seed         int64
	Table        cipher.Table
	Plaintext    string
	Score        int
	Improvements []Improvement
}

// Result is the best state over all completed restarts.
type Result struct {
	Table      cipher.Table
	Plaintext  string
	Score      int
	Iterations int
	Restarts   []RestartResult
}

// Breaker runs the search. The rng only hands out per-restart seeds, so a
// seeded rng gives the same Result whatever the worker count.
type Breaker struct {
	opts Options
	rng  *rand.Rand
}

// New returns a Breaker. Zero counts in opts fall back to the defaults.
func New(opts Options, rng *rand.Rand) *Breaker {
	if opts.Restarts <= 0 {
		opts.Restarts = DefaultRestarts
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.RandomAcceptance < 0 {
		opts.RandomAcceptance = 0
	}
	return &Breaker{opts: opts, rng: rng}
}

// Options returns the effective options.
func (b *Breaker) Options() Options {
	return b.opts
}

// Break searches for the key table that decrypts ciphertext into the most
// English-like text. The context is checked before each restart starts; a
// started restart always runs to the end. When the context is done before
// any restart ran, its error is returned.
func (b *Breaker) Break(ctx context.Context, ciphertext string) (Result, error) {
	src := []byte(alphabet.Normalize(ciphertext))
	if len(src)%2 != 0 {
		return Result{}, cipher.ErrOddLengthCiphertext
	}

	seeds := generator.FromRand(b.rng).Seeds(b.opts.Restarts)
	results := make([]*RestartResult, b.opts.Restarts)

	var g errgroup.Group
	g.SetLimit(b.opts.Workers)
	for i, seed := range seeds {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res := b.climb(src, i, seed)
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	out := Result{Score: -1}
	for _, res := range results {
		if res == nil {
			continue
		}
		out.Restarts = append(out.Restarts, *res)
		out.Iterations += b.opts.Iterations
		if res.Score > out.Score {
			out.Table = res.Table
			out.Plaintext = res.Plaintext
			out.Score = res.Score
		}
	}
	if len(out.Restarts) == 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
	}
	return out, nil
}

func (b *Breaker) climb(src []byte, index int, seed int64) RestartResult {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, len(src))

	decryptScore := func(c cells) int {
		cipher.TableFromCells(c).DecryptInto(buf, src)
		return Score(buf)
	}

	parent := generator.FromRand(rng).TableCells()
	parentScore := decryptScore(parent)
	best, bestScore := parent, parentScore

	var improvements []Improvement
	if b.opts.Trace {
		improvements = append(improvements, Improvement{Iteration: 0, Score: bestScore})
	}

	for it := 1; it <= b.opts.Iterations; it++ {
		child := parent
		mutate(&child, rng)
		childScore := decryptScore(child)
		if childScore >= parentScore || rng.Float64() < b.opts.RandomAcceptance {
			parent, parentScore = child, childScore
		}
		if parentScore > bestScore {
			best, bestScore = parent, parentScore
			if b.opts.Trace {
				improvements = append(improvements, Improvement{Iteration: it, Score: bestScore})
			}
		}
	}

	table := cipher.TableFromCells(best)
	plain := make([]byte, len(src))
	table.DecryptInto(plain, src)
	return RestartResult{
		Index:        index,
		Seed:         seed,
		Table:        table,
		Plaintext:    string(plain),
		Score:        bestScore,
		Improvements: improvements,
	}
}
