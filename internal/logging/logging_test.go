package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vigenplay/internal/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr error
	}{
		{"defaults", logging.Config{}, nil},
		{"console/debug", logging.Config{Output: "console", Level: "debug"}, nil},
		{"stderr/warn", logging.Config{Output: "stderr", Level: "warn"}, nil},
		{"json/error", logging.Config{Output: "json", Level: "error"}, nil},
		{"case insensitive", logging.Config{Output: "JSON", Level: "INFO"}, nil},
		{"invalid level", logging.Config{Output: "json", Level: "critical"}, logging.ErrInvalidLogLevel},
		{"invalid output", logging.Config{Output: "text", Level: "warn"}, logging.ErrInvalidLogOutput},
		{"invalid output and level", logging.Config{Output: "out", Level: "debug2"}, logging.ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestJSONOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(logging.Config{Output: "json", Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Int("keylen", 5).Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.InDelta(t, 5, entry["keylen"], 0)
}
