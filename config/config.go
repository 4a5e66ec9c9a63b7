/*
Package config holds the runtime configuration of the cascade.

Configuration is read from YAML. Every field is optional; missing fields
keep their defaults:

    tracing:
      cascade.css: debug
      cascade.applier: error
    cascade:
      declaration_map_capacity: 10
      pool_size: 16
    cache:
      initial_capacity: 64

Unknown fields are rejected, to catch typos early.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style/css"
	"github.com/npillmayer/cascade/dom/style/stylecache"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// CascadeConfig sizes the declaration pools of cascade passes.
type CascadeConfig struct {
	DeclarationMapCapacity int `yaml:"declaration_map_capacity"`
	PoolSize               int `yaml:"pool_size"`
}

// CacheConfig sizes the inline style cache.
type CacheConfig struct {
	InitialCapacity int `yaml:"initial_capacity"`
}

// Config is the configuration of the cascade.
type Config struct {
	Tracing map[string]string `yaml:"tracing"` // trace key => level
	Cascade CascadeConfig     `yaml:"cascade"`
	Cache   CacheConfig       `yaml:"cache"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Tracing: map[string]string{},
		Cascade: CascadeConfig{
			DeclarationMapCapacity: css.DefaultMapCapacity,
			PoolSize:               css.DefaultPoolSize,
		},
		Cache: CacheConfig{
			InitialCapacity: stylecache.DefaultCapacity,
		},
	}
}

// Load reads a configuration from YAML, on top of the defaults.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return Load(bytes.NewReader(data))
}

func (cfg *Config) validate() error {
	if cfg.Cascade.DeclarationMapCapacity < 1 {
		return fmt.Errorf("cascade.declaration_map_capacity must be positive, is %d",
			cfg.Cascade.DeclarationMapCapacity)
	}
	if cfg.Cascade.PoolSize < 1 {
		return fmt.Errorf("cascade.pool_size must be positive, is %d", cfg.Cascade.PoolSize)
	}
	if cfg.Cache.InitialCapacity < 1 {
		return fmt.Errorf("cache.initial_capacity must be positive, is %d", cfg.Cache.InitialCapacity)
	}
	for key, level := range cfg.Tracing {
		if _, err := traceLevel(level); err != nil {
			return fmt.Errorf("tracing.%s: %w", key, err)
		}
	}
	return nil
}

func traceLevel(s string) (tracing.TraceLevel, error) {
	switch strings.ToLower(s) {
	case "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level '%s'", s)
}

// Apply sets the configured trace levels.
func (cfg *Config) Apply() {
	for key, level := range cfg.Tracing {
		l, err := traceLevel(level)
		if err != nil {
			continue // rejected by Load
		}
		tracing.Select(key).SetTraceLevel(l)
	}
}

// NewPool creates a declaration pool sized according to cfg.
func (cfg *Config) NewPool() *css.DeclarationPool {
	return css.NewDeclarationPool(cfg.Cascade.DeclarationMapCapacity, cfg.Cascade.PoolSize)
}

// NewCache creates an inline style cache sized according to cfg.
func (cfg *Config) NewCache(ids *attr.IDs) *stylecache.Cache {
	return stylecache.New(ids, cfg.Cache.InitialCapacity)
}
