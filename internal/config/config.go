package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements2csv/internal/source"
	"github.com/cleared-dev/statements2csv/internal/statement"
)

// FileName is the config file looked up in the working directory.
const FileName = "statements2csv.yaml"

// Config represents the top-level statements2csv.yaml configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Workers  int           `yaml:"workers"` // 0 means half the CPUs
	Flavors  FlavorsConfig `yaml:"flavors"`
	Grep     GrepConfig    `yaml:"grep"`
}

// FlavorsConfig lists the detection flavors to try per document.
type FlavorsConfig struct {
	Default []string       `yaml:"default"`
	Issuers []IssuerConfig `yaml:"issuers,omitempty"`
}

// IssuerConfig overrides the flavors for paths containing any pattern.
type IssuerConfig struct {
	Patterns []string `yaml:"patterns"`
	Flavors  []string `yaml:"flavors"`
}

// GrepConfig configures the grep subcommand.
type GrepConfig struct {
	Snapshot string `yaml:"snapshot"` // CSV searched when no file is given
}

// Load reads a statements2csv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	policy := statement.DefaultPolicy()
	cfg := &Config{
		LogLevel: "warn",
		Flavors:  FlavorsConfig{Default: flavorNames(policy.Default)},
	}
	for _, rule := range policy.Issuers {
		cfg.Flavors.Issuers = append(cfg.Flavors.Issuers, IssuerConfig{
			Patterns: append([]string(nil), rule.Patterns...),
			Flavors:  flavorNames(rule.Flavors),
		})
	}
	return cfg
}

// Policy converts the flavors section, rejecting unknown flavor names.
func (c *Config) Policy() (statement.Policy, error) {
	var p statement.Policy
	var err error
	if p.Default, err = parseFlavors(c.Flavors.Default); err != nil {
		return statement.Policy{}, fmt.Errorf("flavors.default: %w", err)
	}
	for i, ic := range c.Flavors.Issuers {
		flavors, err := parseFlavors(ic.Flavors)
		if err != nil {
			return statement.Policy{}, fmt.Errorf("flavors.issuers[%d]: %w", i, err)
		}
		p.Issuers = append(p.Issuers, statement.IssuerRule{Patterns: ic.Patterns, Flavors: flavors})
	}
	return p, nil
}

func parseFlavors(names []string) ([]source.Flavor, error) {
	var out []source.Flavor
	for _, name := range names {
		f, err := source.ParseFlavor(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func flavorNames(flavors []source.Flavor) []string {
	out := make([]string, len(flavors))
	for i, f := range flavors {
		out[i] = string(f)
	}
	return out
}
