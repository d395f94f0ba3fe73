package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/cipher"
	"github.com/verte-zerg/vigenplay/internal/model"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) InsertRun(ctx context.Context, run model.RunRecord, trials []model.Trial) (string, error) {
	args := m.Called(ctx, run, trials)
	return args.String(0), args.Error(1)
}

func writeInput(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestSessionEncryptDecrypt(t *testing.T) {
	input := writeInput(t, "Defend the east wall of the castle!\n")
	rec := new(MockRecorder)
	rec.On("InsertRun", mock.Anything, mock.MatchedBy(func(run model.RunRecord) bool {
		return run.Operation == "encrypt" && run.SubstitutionKey == "FORTIFICATION"
	}), mock.Anything).Return("run-1", nil).Once()
	rec.On("InsertRun", mock.Anything, mock.MatchedBy(func(run model.RunRecord) bool {
		return run.Operation == "decrypt" && run.Preview == "DEFENDTHEEASTWALLOFTHECASTLE"
	}), mock.Anything).Return("run-2", nil).Once()

	s := Session{InputPath: input, Recorder: rec}

	out, err := s.Run(context.Background(), OpEncrypt, "monarchy", "fortification")
	require.NoError(t, err)
	assert.Equal(t, "HYXYZDXFINQAGQLELCUUMPVNPZYZLE", out.Output)
	assert.Equal(t, filepath.Join(filepath.Dir(input), CiphertextFile), out.OutputPath)
	assert.Equal(t, "run-1", out.RunID)

	out, err = s.Run(context.Background(), OpDecrypt, "monarchy", "fortification")
	require.NoError(t, err)
	assert.Equal(t, "DEFENDTHEEASTWALLOFTHECASTLE", out.Output)
	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), PlaintextFile))
	require.NoError(t, err)
	assert.Equal(t, out.Output, string(data))

	rec.AssertExpectations(t)
}

func TestSessionErrors(t *testing.T) {
	input := writeInput(t, "attack at dawn")
	s := Session{InputPath: input}

	_, err := s.Run(context.Background(), OpEncrypt, "KEY", "SHORT")
	assert.ErrorIs(t, err, cipher.ErrWeakKey)

	_, err = s.Run(context.Background(), OpDecrypt, "KEY", "FORTIFICATION")
	assert.ErrorContains(t, err, "failed to read input")

	_, err = s.Run(context.Background(), Operation("rot13"), "KEY", "FORTIFICATION")
	assert.Error(t, err)
}

func TestSessionRecorderFailureKeepsOutput(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("InsertRun", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	out, err := Session{InputPath: writeInput(t, "attack at dawn"), Recorder: rec}.
		Run(context.Background(), OpEncrypt, "KEY", "FORTIFICATION")
	assert.ErrorContains(t, err, "disk full")
	assert.NotEmpty(t, out.Output)
	assert.FileExists(t, out.OutputPath)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "ABC", Preview("ABC"))
	long := string(make([]byte, 100))
	assert.Len(t, Preview(long), previewLetters+3)
}
