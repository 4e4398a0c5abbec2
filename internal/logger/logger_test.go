package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestConfigure_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nyssa.log")
	t.Cleanup(func() { SetOutput(os.Stderr) })

	require.NoError(t, Configure("debug", path))
	Debug("hello", "screen", "chat")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "screen=chat")
}

func TestConfigure_EnvLevel(t *testing.T) {
	t.Setenv("NYSSA_LOG_LEVEL", "error")
	t.Cleanup(func() { SetOutput(os.Stderr) })

	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
}

func TestNewComponentLogger_SharesOutput(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { SetOutput(os.Stderr) })
	SetOutput(&buf)
	Logger.SetLevel(log.InfoLevel)

	l := NewComponentLogger("alert")
	l.Info("armed", "delay", "8s")

	assert.Contains(t, buf.String(), "alert")
	assert.Contains(t, buf.String(), "armed")
}
