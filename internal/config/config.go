// Package config loads the rtio CLI settings from a JSON-with-comments file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/tetratelabs/rtio/internal/logging"
)

// DefaultPath is the file the CLI reads when --config isn't given.
const DefaultPath = "rtio.hujson"

var (
	ErrRead    = errors.New("cannot read config")
	ErrInvalid = errors.New("invalid config")
)

// Config are the CLI settings. Zero fields take the defaults.
type Config struct {
	// ChunkSize is the buffer size, in bytes, of each read.
	ChunkSize int `json:"chunk_size"`
	// Allocator is "heap" or "pages", see package alloc.
	Allocator string `json:"allocator"`
	Log       Log    `json:"log"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
	// Scopes are log scope names, e.g. "filesystem".
	Scopes []string `json:"scopes"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		ChunkSize: 4096,
		Allocator: "heap",
		Log:       Log{Level: "info"},
	}
}

// Load reads path. A missing file is not an error unless mustExist.
//
// This reads with package os rather than package file: the config chooses
// the process allocator, so loading it must not allocate through alloc.
func Load(path string, mustExist bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}
	return cfg, nil
}

// Parse decodes JSONC data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err = dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, was %d", c.ChunkSize)
	}
	switch c.Allocator {
	case "heap", "pages":
	default:
		return fmt.Errorf("allocator must be heap or pages, was %q", c.Allocator)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	_, err := c.Log.LogScopes()
	return err
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// LogScopes parses Scopes.
func (l Log) LogScopes() (logging.LogScopes, error) {
	scopes, err := logging.ParseScopes(strings.Join(l.Scopes, ","))
	if err != nil {
		return 0, fmt.Errorf("log.scopes: %w", err)
	}
	return scopes, nil
}

const defaultFile = `// rtio CLI settings. Comments and trailing commas are allowed.
{
	// Buffer size of each read, in bytes.
	"chunk_size": 4096,
	// "heap" (Go runtime) or "pages" (anonymous host mappings).
	"allocator": "heap",
	"log": {
		"level": "info",
		// Any of: filesystem, memory, proc, all.
		"scopes": [],
	},
}
`

// WriteDefault atomically writes a commented default config to path.
func WriteDefault(path string) error {
	if err := atomic.WriteFile(path, strings.NewReader(defaultFile)); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
