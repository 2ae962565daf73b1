package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LogLevel: "error",
		Language: "eng",
		Engine:   EngineConfig{Quiet: true},
		Image:    ImageConfig{MaxDimension: 4096},
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.LogLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidateRanges(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.NumThreads = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Engine.DPI = -300
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Image.MaxDimension = -1
	assert.Error(t, cfg.Validate())
}
