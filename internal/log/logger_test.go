package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.NotNil(t, cfg.Output)
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLevel  string
		wantFormat Format
	}{
		{"defaults", nil, "warn", FormatText},
		{"debug flag", map[string]string{"CHEZMOI_TOGGLE_DEBUG": "1", "CHEZMOI_TOGGLE_LOG_LEVEL": "error"}, "debug", FormatText},
		{"level", map[string]string{"CHEZMOI_TOGGLE_LOG_LEVEL": "INFO"}, "info", FormatText},
		{"format", map[string]string{"CHEZMOI_TOGGLE_LOG_FORMAT": "JSON"}, "warn", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHEZMOI_TOGGLE_DEBUG", "")
			t.Setenv("CHEZMOI_TOGGLE_LOG_LEVEL", "")
			t.Setenv("CHEZMOI_TOGGLE_LOG_FORMAT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := FromEnv()
			assert.Equal(t, tt.wantLevel, cfg.Level)
			assert.Equal(t, tt.wantFormat, cfg.Format)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{Level: "debug", Format: FormatJSON}).Validate())
	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Level: "loud"}).Validate())
	assert.Error(t, (&Config{Level: "info", Format: "xml"}).Validate())
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatText, Output: &buf})

	logger.Debug("hidden")
	logger.Info("rewrote file", slog.String(PathKey, "/tmp/x"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rewrote file")
	assert.Contains(t, out, "path=/tmp/x")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "warn", Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shadowed", slog.String(GroupKey, "+vpn"))

	line := strings.TrimSpace(buf.String())
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "shadowed", record["msg"])
	assert.Equal(t, "+vpn", record[GroupKey])
	assert.Equal(t, "WARN", record["level"])
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&Config{Level: "error", Output: &buf})
	slog.Warn("quiet")
	slog.Error("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
