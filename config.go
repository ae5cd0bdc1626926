package ggui

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/ggui/render"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("ggui: invalid config")

// BackendAuto selects the best registered backend.
const BackendAuto = "auto"

// Config holds the settings that can come from a configuration file.
//
// A TOML file looks like:
//
//	backend = "wgpu"
//	ring_size = 5
//	batch_vertices = 12288
//	log_level = "debug"
type Config struct {
	// Backend is a registered backend name or "auto".
	Backend string `toml:"backend"`

	// RingSize is the number of vertex buffers the backend cycles through.
	RingSize int `toml:"ring_size"`

	// BatchVertices is the vertex capacity of one batch.
	BatchVertices int `toml:"batch_vertices"`

	// LogLevel is "debug", "info", "warn", "error" or empty. When set,
	// New installs a text logger on stderr at that level.
	LogLevel string `toml:"log_level,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendAuto,
		RingSize:      render.DefaultRingSize,
		BatchVertices: render.DefaultBatchVertices,
	}
}

// LoadConfig reads a TOML configuration file. Keys missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ggui: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses TOML configuration data. Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.TrimSpace(missing.String()))
		}
		return Config{}, fmt.Errorf("ggui: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.RingSize < 0 {
		return fmt.Errorf("%w: ring_size %d", ErrInvalidConfig, c.RingSize)
	}
	if c.BatchVertices != 0 && c.BatchVertices < 6 {
		return fmt.Errorf("%w: batch_vertices %d is less than one quad", ErrInvalidConfig, c.BatchVertices)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty LogLevel yields slog.LevelInfo.
func (c Config) Level() (level slog.Level, err error) {
	if c.LogLevel == "" {
		return 0, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c Config) backendOptions() render.BackendOptions {
	return render.BackendOptions{
		RingSize:      c.RingSize,
		BatchVertices: c.BatchVertices,
	}.Normalize()
}
