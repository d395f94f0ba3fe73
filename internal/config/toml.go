// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Break BreakConfig `toml:"break"`
	Log   LogConfig   `toml:"log"`
}

// BreakConfig maps attack settings. Unset values stay nil.
type BreakConfig struct {
	TimeBudget *string `toml:"time-budget"`
	Restarts   *int    `toml:"restarts"`
	Iterations *int    `toml:"iterations"`
	Workers    *int    `toml:"workers"`
	Top        *int    `toml:"top"`
	Seed       *int64  `toml:"seed"`
	Dictionary *string `toml:"dictionary"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Output *string `toml:"output"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is the commented config file written by `vigenplay config`.
func Template(d Defaults) string {
	return fmt.Sprintf(`# vigenplay configuration
# Uncomment a value to enable it. CLI flags override config values.

[break]
# time-budget = %q        # Wall clock budget checked between key lengths
# restarts = %d             # Key table search restarts per key length
# iterations = %d         # Mutations per restart
# workers = 0               # Parallel restarts (0 = number of CPUs)
# top = %d                   # Ranked key lengths tried before the fallbacks
# seed = 0                  # Random seed (0 = time based)
# dictionary = ""           # Word list used to rate the recovered plaintext

[log]
# level = %q             # trace, debug, info, warn, error
# output = %q         # console, stderr, json
`,
		d.TimeBudget.String(),
		d.Restarts,
		d.Iterations,
		d.Top,
		d.LogLevel,
		d.LogOutput,
	)
}
