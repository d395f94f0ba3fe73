package attack_test

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/attack"
	"github.com/verte-zerg/vigenplay/internal/breaker"
	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/metrics"
	"github.com/verte-zerg/vigenplay/internal/wordlist"
)

const englishSample = "It was the best of times it was the worst of times it was the age of wisdom " +
	"it was the age of foolishness it was the epoch of belief it was the epoch of incredulity " +
	"it was the season of light it was the season of darkness it was the spring of hope it was " +
	"the winter of despair we had everything before us we had nothing before us we were all " +
	"going direct to heaven we were all going direct the other way in short the period was so " +
	"far like the present period that some of its noisiest authorities insisted on its being " +
	"received for good or for evil in the superlative degree of comparison only there were a " +
	"king with a large jaw and a queen with a plain face on the throne of england there were a " +
	"king with a large jaw and a queen with a fair face on the throne of france in both " +
	"countries it was clearer than crystal to the lords of the state preserves of loaves and " +
	"fishes that things in general were settled for ever it was the year of our lord one " +
	"thousand seven hundred and seventy five spiritual revelations were conceded to england at " +
	"that favoured period as at this"

type MockBreaker struct {
	mock.Mock
}

func (m *MockBreaker) Break(ctx context.Context, ciphertext string) (breaker.Result, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).(breaker.Result), args.Error(1) // nolint: forcetypeassert
}

func mockFactory(m *MockBreaker) attack.BreakerFactory {
	return func(breaker.Options, *rand.Rand) attack.DigramBreaker {
		return m
	}
}

func composedSample(t *testing.T) string {
	t.Helper()
	ct, err := cipher.Encrypt(englishSample, "PLAYFAIR EXAMPLE", "LEMONADESTAND")
	require.NoError(t, err)
	return ct
}

func TestRecoverSubstitutionKey(t *testing.T) {
	ct, err := cipher.EncryptSubstitution(englishSample, "LEMON")
	require.NoError(t, err)

	assert.Equal(t, "LEMON", attack.RecoverSubstitutionKey(ct, 5))
	assert.Equal(t, "", attack.RecoverSubstitutionKey(ct, 0))
	assert.Equal(t, "AAA", attack.RecoverSubstitutionKey("", 3))
}

func TestRunEmptyCiphertext(t *testing.T) {
	logger := zerolog.Nop()
	a := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, nil)

	_, err := a.Run(context.Background(), "123 ...", attack.DefaultOptions())
	assert.ErrorIs(t, err, attack.ErrEmptyCiphertext)
}

func TestRunStopsWhenBudgetIsExhausted(t *testing.T) {
	logger := zerolog.Nop()
	clock := clockwork.NewFakeClock()
	collector := metrics.New()
	br := new(MockBreaker)

	table := cipher.BuildTable("MONARCHY")
	br.On("Break", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { clock.Advance(70 * time.Second) }).
		Return(breaker.Result{Table: table, Plaintext: "LOWSCORE", Score: 3, Restarts: make([]breaker.RestartResult, 2), Iterations: 20}, nil).
		Once()
	br.On("Break", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { clock.Advance(70 * time.Second) }).
		Return(breaker.Result{Table: table, Plaintext: "THEBESTX", Score: 9, Restarts: make([]breaker.RestartResult, 2), Iterations: 20}, nil).
		Once()

	a := attack.NewAttacker(clock, &logger, collector, mockFactory(br))
	opts := attack.DefaultOptions()
	opts.TimeBudget = 120 * time.Second
	opts.Dictionary = wordlist.NewDictionary([]string{"the", "best"})

	got, err := a.Run(context.Background(), composedSample(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Tried)
	assert.Equal(t, 9, got.Score)
	assert.Equal(t, "THEBEST", got.Plaintext)
	assert.Equal(t, table.String(), got.DigramTable)
	assert.Equal(t, 140*time.Second, got.Elapsed)
	assert.InDelta(t, 1.0, got.Readability, 1e-9)
	assert.Len(t, got.SubstitutionKey, got.KeyLength)
	require.Len(t, got.Trials, 2)
	assert.Equal(t, 3, got.Trials[0].Score)
	assert.Equal(t, 9, got.Trials[1].Score)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.AttackRuns))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.AttackCandidates))
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.BreakerRestarts))
	assert.Equal(t, 40.0, testutil.ToFloat64(collector.BreakerIterations))
	assert.Equal(t, 9.0, testutil.ToFloat64(collector.AttackBestScore))
	br.AssertExpectations(t)
}

func TestRunKeepsFirstOfEqualScores(t *testing.T) {
	logger := zerolog.Nop()
	clock := clockwork.NewFakeClock()
	br := new(MockBreaker)
	br.On("Break", mock.Anything, mock.Anything).
		Return(breaker.Result{Table: cipher.BuildTable("A"), Plaintext: "FIRST", Score: 4}, nil).
		Once()
	br.On("Break", mock.Anything, mock.Anything).
		Return(breaker.Result{Table: cipher.BuildTable("B"), Plaintext: "LATER", Score: 4}, nil)

	got, err := attack.NewAttacker(clock, &logger, nil, mockFactory(br)).
		Run(context.Background(), composedSample(t), attack.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "FIRST", got.Plaintext)
	assert.GreaterOrEqual(t, got.Tried, 5)
}

func TestRunSkipsOddIntermediate(t *testing.T) {
	logger := zerolog.Nop()
	br := new(MockBreaker)

	got, err := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, mockFactory(br)).
		Run(context.Background(), composedSample(t)+"Q", attack.DefaultOptions())
	require.NoError(t, err)

	assert.Positive(t, got.Tried)
	assert.Equal(t, 0, got.Score)
	assert.Empty(t, got.Plaintext)
	require.Len(t, got.Trials, got.Tried)
	for _, tr := range got.Trials {
		assert.True(t, tr.Skipped)
	}
	br.AssertNotCalled(t, "Break", mock.Anything, mock.Anything)
}

func TestRunCancelled(t *testing.T) {
	logger := zerolog.Nop()
	br := new(MockBreaker)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, mockFactory(br)).
		Run(ctx, composedSample(t), attack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Tried)
	br.AssertNotCalled(t, "Break", mock.Anything, mock.Anything)
}

func TestRunIsReproducible(t *testing.T) {
	logger := zerolog.Nop()
	opts := attack.DefaultOptions()
	opts.Top = 2
	opts.Seed = 99
	opts.Breaker = breaker.Options{Restarts: 3, Iterations: 150, Workers: 2, RandomAcceptance: breaker.DefaultRandomAcceptance}

	ct := composedSample(t)
	first, err := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, nil).Run(context.Background(), ct, opts)
	require.NoError(t, err)
	second, err := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, nil).Run(context.Background(), ct, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Positive(t, first.Tried)
	assert.Equal(t, strings.ToUpper(first.Plaintext), first.Plaintext)
	assert.Len(t, first.DigramTable, cipher.TableCells)
}

func TestRunCollectsTraces(t *testing.T) {
	logger := zerolog.Nop()
	opts := attack.DefaultOptions()
	opts.Top = 1
	opts.Seed = 3
	opts.Breaker = breaker.Options{Restarts: 2, Iterations: 100, Trace: true}

	got, err := attack.NewAttacker(clockwork.NewFakeClock(), &logger, nil, nil).
		Run(context.Background(), composedSample(t), opts)
	require.NoError(t, err)
	require.Len(t, got.Traces, 2)
	for _, tr := range got.Traces {
		require.NotEmpty(t, tr)
		assert.GreaterOrEqual(t, got.Score, tr[len(tr)-1])
	}
}
