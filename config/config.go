// Package config loads the YAML configuration of a netmodel process and turns
// it into network options, a logger and a metrics registry.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Variant context strategies.
const (
	StrategyShared    = "shared"
	StrategyExecution = "execution"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Network  NetworkConfig  `yaml:"network"`
	Variants VariantsConfig `yaml:"variants"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// NetworkConfig identifies the network. An empty ID gets a random UUID.
type NetworkConfig struct {
	ID             string `yaml:"id" validate:"omitempty,max=128"`
	NodeIndexLimit int    `yaml:"node_index_limit" validate:"min=0,max=1000000"`
}

// VariantsConfig selects the variant context and the variants to create at
// start-up, cloned from the initial one.
type VariantsConfig struct {
	Strategy string   `yaml:"strategy" validate:"oneof=shared execution"`
	IDs      []string `yaml:"ids" validate:"max=1000,unique,dive,required,max=128,ne=InitialState"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// MetricsConfig enables the Prometheus registry and its HTTP endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"omitempty,max=64"`
	Addr      string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills in defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) applyDefaults() {
	if c.Variants.Strategy == "" {
		c.Variants.Strategy = StrategyShared
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
