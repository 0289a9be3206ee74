// Package config defines the explicit configuration surface consumed by the
// conversion pipeline.
//
// The pipeline never looks configuration up ad hoc: a Config is populated
// once at startup (from a TOML file, flags, or the embedding host) and passed
// in by value. Zero value means defaults everywhere.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/renderfig/renderfig/pkg/engine"
	"github.com/renderfig/renderfig/pkg/errors"
)

// Failure policy values for OnError.
const (
	// OnErrorWarn logs a warning for a failed block and leaves the
	// original code block in place. This is the default.
	OnErrorWarn = "warn"

	// OnErrorFail aborts the whole run on the first failed block.
	OnErrorFail = "fail"
)

// Config is the full configuration surface of the pipeline.
type Config struct {
	// Cache enables the content-addressed image cache. Off by default:
	// rendering must behave identically with and without it, so enabling
	// is an explicit opt-in.
	Cache bool `toml:"cache"`

	// CacheDir overrides the platform cache directory.
	CacheDir string `toml:"cache_dir"`

	// OnError selects the failure policy: "warn" (default) or "fail".
	OnError string `toml:"on_error"`

	// Engines holds per-engine settings keyed by engine name.
	Engines map[string]engine.Config `toml:"engines"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		OnError: OnErrorWarn,
	}
}

// Load reads a TOML configuration file and validates it. Defaults apply for
// anything the file doesn't set.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline can't act on.
func (c *Config) Validate() error {
	switch c.OnError {
	case "", OnErrorWarn, OnErrorFail:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"on_error must be %q or %q, got %q", OnErrorWarn, OnErrorFail, c.OnError)
	}
	return nil
}

// FailFast reports whether a block failure aborts the whole run.
func (c *Config) FailFast() bool {
	return c.OnError == OnErrorFail
}

// Engine returns the configuration for an engine name, zero value when none
// is set.
func (c *Config) Engine(name string) engine.Config {
	return c.Engines[name]
}

// PackageOverrides extracts the dynamic-loader executable overrides from the
// per-engine settings.
func (c *Config) PackageOverrides() map[string]string {
	overrides := make(map[string]string)
	for name, ec := range c.Engines {
		if ec.Package != "" {
			overrides[name] = ec.Package
		}
	}
	return overrides
}
