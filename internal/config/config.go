/*
 * config.go, part of refchem.
 *
 * Copyright 2024 The refchem authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the settings of the refdb command from an optional
// YAML file and REFCHEM_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix of every environment variable read by Load.
const envPrefix = "REFCHEM"

// Default values.
const (
	DefaultDatabaseDirectory = "RMG-database/input"
	DefaultParallelism       = 1
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
)

// Config holds every setting of refdb.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// DatabaseConfig says where the reference sets are and how to load them.
// An empty Sets means the main set.
type DatabaseConfig struct {
	Directory   string   `mapstructure:"directory"`
	Sets        []string `mapstructure:"sets"`
	Parallelism int      `mapstructure:"parallelism"`
}

// LogConfig sets the level and encoding of the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig names the file where load metrics are written in the
// Prometheus text format. Empty means no file.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// keys are bound to the environment by newViper. Viper only reads
// environment variables for keys it already knows.
var keys = map[string]interface{}{
	"database.directory":   DefaultDatabaseDirectory,
	"database.sets":        []string{},
	"database.parallelism": DefaultParallelism,
	"log.level":            DefaultLogLevel,
	"log.format":           DefaultLogFormat,
	"metrics.textfile":     "",
}

// newViper returns a Viper that reads YAML and maps nested keys such as
// "database.directory" to REFCHEM_DATABASE_DIRECTORY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, d := range keys {
		v.SetDefault(k, d)
	}
	return v
}

// Load reads the YAML file at configPath, if configPath is not empty,
// merges the REFCHEM_* environment variables, applies the defaults and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills the zero-value fields of cfg. Set fields are kept.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Database.Directory == "" {
		cfg.Database.Directory = DefaultDatabaseDirectory
	}
	if cfg.Database.Parallelism == 0 {
		cfg.Database.Parallelism = DefaultParallelism
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate checks the values of c.
func (c *Config) Validate() error {
	if c.Database.Parallelism < 1 {
		return fmt.Errorf("config: database.parallelism must be at least 1, got %d", c.Database.Parallelism)
	}
	for _, s := range c.Database.Sets {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("config: database.sets contains an empty name")
		}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return fmt.Errorf("config: log.level %q is invalid", c.Log.Level)
	}
	return nil
}
