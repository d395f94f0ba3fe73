package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWords(t *testing.T) {
	path := writeWords(t, "# comment\nattack\n\n  dawn  \n")
	words, err := LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"attack", "dawn"}, words)

	_, err = LoadWords(writeWords(t, "\n\n"))
	assert.Error(t, err)

	_, err = LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadDictionary(t *testing.T) {
	d, err := LoadDictionary(writeWords(t, "attack\nat\na\nco-op\nDawn\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Contains("dawn"))
	assert.False(t, d.Contains("coop"))

	_, err = LoadDictionary(writeWords(t, "a\nx-y\n"))
	assert.Error(t, err)
}

func TestReadability(t *testing.T) {
	d := NewDictionary([]string{"attack", "at", "dawn", "tack"})

	assert.InDelta(t, 1.0, d.Readability("Attack at dawn!"), 1e-9)
	assert.InDelta(t, 0.0, d.Readability("QQQQ"), 1e-9)
	assert.InDelta(t, 0.0, d.Readability(""), 1e-9)
	// DAWN covers four of the eight letters.
	assert.InDelta(t, 0.5, d.Readability("DAWNQQQQ"), 1e-9)
	assert.InDelta(t, 0.0, NewDictionary(nil).Readability("ATTACK"), 1e-9)
}
