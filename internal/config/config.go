package config

import (
	"fmt"
	"strings"
)

// Config is the complete configuration for the ocr CLI. Values are resolved
// by the Loader from defaults, an optional config file, environment
// variables, and command-line flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Language is the requested recognition language. Common aliases are
	// resolved to engine identifiers by the lang package.
	Language string `mapstructure:"language" yaml:"language" json:"language"`

	Engine EngineConfig `mapstructure:"engine" yaml:"engine" json:"engine"`
	Image  ImageConfig  `mapstructure:"image" yaml:"image" json:"image"`
}

// EngineConfig contains settings handed to the OCR engine at initialization.
type EngineConfig struct {
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	NumThreads int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
	DPI        int    `mapstructure:"dpi" yaml:"dpi" json:"dpi"`
	Quiet      bool   `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
}

// ImageConfig contains input image handling settings.
type ImageConfig struct {
	// MaxDimension caps the longest image side before recognition; larger
	// inputs are scaled down. 0 disables scaling.
	MaxDimension int `mapstructure:"max_dimension" yaml:"max_dimension" json:"max_dimension"`
}

// validLogLevels are the accepted log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	levelOK := false
	for _, l := range validLogLevels {
		if c.LogLevel == l {
			levelOK = true
			break
		}
	}
	if !levelOK {
		return fmt.Errorf("invalid log level: %q (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Engine.NumThreads < 0 {
		return fmt.Errorf("invalid engine thread count: %d (must be >= 0)", c.Engine.NumThreads)
	}
	if c.Engine.DPI < 0 {
		return fmt.Errorf("invalid engine dpi: %d (must be >= 0)", c.Engine.DPI)
	}
	if c.Image.MaxDimension < 0 {
		return fmt.Errorf("invalid image max dimension: %d (must be >= 0)", c.Image.MaxDimension)
	}
	return nil
}
