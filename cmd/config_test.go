package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "gitsync", configBaseName)
	assert.Equal(t, "gitsync.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "manifest", manifestConfigKey)
	assert.Equal(t, "status.format", formatConfigKey)
	assert.Equal(t, "status.parallel", parallelConfigKey)
	assert.Equal(t, "repos", reposConfigKey)
	assert.Equal(t, 1, defaultParallel)
	assert.Equal(t, "GITSYNC", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestDefaultLogFilename(t *testing.T) {
	path := defaultLogFilename()
	assert.Equal(t, logBaseName, filepath.Base(path))
	assert.Equal(t, logDirName, filepath.Base(filepath.Dir(path)))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "logs", "gitsync.log")
	configureLogger(logPath, true)

	slog.Debug("debug line", "key", "value")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "debug line")
	assert.Contains(t, string(contents), "key=value")
	assert.Same(t, globalLogger, slog.Default())
}
