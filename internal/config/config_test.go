package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/model"
)

func testDefaults() Defaults {
	return Defaults{TimeBudget: 2 * time.Minute, Restarts: 30, Iterations: 1500, Top: 6, LogLevel: "info", LogOutput: "console"}
}

func validBreak() model.BreakConfig {
	return model.BreakConfig{TimeBudget: time.Minute, Restarts: 30, Iterations: 1500, Top: 6}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Break.Restarts)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[break]
time-budget = "45s"
restarts = 12
seed = 7

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Break.Restarts)
	assert.Equal(t, 12, *cfg.Break.Restarts)
	assert.Equal(t, int64(7), *cfg.Break.Seed)
	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Nil(t, cfg.Break.Iterations)
	assert.Nil(t, cfg.Log.Output)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[break]\nrestart = 3\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "restart")
}

func TestTemplateDecodes(t *testing.T) {
	tpl := Template(testDefaults())
	assert.True(t, strings.HasPrefix(tpl, "# vigenplay configuration"))
	assert.Contains(t, tpl, `# time-budget = "2m0s"`)

	var cfg FileConfig
	_, err := toml.Decode(tpl, &cfg)
	require.NoError(t, err)
	assert.Nil(t, cfg.Break.TimeBudget)
}

func TestApplyBreak(t *testing.T) {
	budget := "90s"
	restarts := 5
	iterations := 99
	dict := "/tmp/words.txt"
	file := BreakConfig{TimeBudget: &budget, Restarts: &restarts, Iterations: &iterations, Dictionary: &dict}

	cfg := validBreak()
	changed := func(flag string) bool { return flag == "iterations" }
	require.NoError(t, ApplyBreak(&cfg, file, changed))

	assert.Equal(t, 90*time.Second, cfg.TimeBudget)
	assert.Equal(t, 5, cfg.Restarts)
	assert.Equal(t, 1500, cfg.Iterations)
	assert.Equal(t, dict, cfg.Dictionary)
	assert.Equal(t, 6, cfg.Top)

	bad := "soon"
	err := ApplyBreak(&cfg, BreakConfig{TimeBudget: &bad}, func(string) bool { return false })
	assert.Error(t, err)
}

func TestValidateBreak(t *testing.T) {
	require.NoError(t, ValidateBreak(validBreak()))

	cfg := validBreak()
	cfg.Restarts = 0
	assert.ErrorContains(t, ValidateBreak(cfg), "--restarts")

	cfg = validBreak()
	cfg.TimeBudget = 0
	assert.ErrorContains(t, ValidateBreak(cfg), "--budget")

	cfg = validBreak()
	cfg.Top = 40
	assert.ErrorContains(t, ValidateBreak(cfg), "lte=25")
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	assert.Equal(t, filepath.Join("/cfg", "vigenplay", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "vigenplay", "words.txt"), DefaultDictionaryPath())
	assert.Equal(t, filepath.Join("/data", "vigenplay", "vigenplay.db"), DefaultDBPath())
}
