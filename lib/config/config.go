// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the cborctl and
// cborview commands.
//
// Configuration is loaded from a single file specified by:
//   - CBORCTL_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

// Config is the configuration for cborctl and cborview.
type Config struct {
	// Output controls how decoded items are rendered.
	Output OutputConfig `yaml:"output"`

	// Tags controls which tag numbers get semantic decoding.
	Tags TagsConfig `yaml:"tags"`

	// LogFile is read from the file with ${HOME} and similar variables
	// expanded. Neither cborctl nor cborview writes to it; both log to
	// stderr.
	LogFile string `yaml:"log_file"`
}

// OutputConfig controls the diagnostic rendering of decoded items.
type OutputConfig struct {
	// Compact suppresses indentation in "unpack" output.
	Compact bool `yaml:"compact"`

	// Indent is the number of spaces per nesting level in "unpack" output.
	// Ignored when Compact is true.
	Indent int `yaml:"indent"`
}

// TagsConfig controls the Parser's tag-decode registry.
type TagsConfig struct {
	// Disable lists tag numbers whose default semantic decoding (Date,
	// URI, RegExp) should be turned off, leaving the raw tagged item
	// instead — useful when inspecting a peer that uses those tag
	// numbers for something else entirely.
	Disable []uint64 `yaml:"disable"`
}

// Default returns the default configuration. LoadFile starts from it,
// and cborctl and cborview use it unchanged when neither --config nor
// CBORCTL_CONFIG names a file. When a file is given, it is the single
// source of truth for any field it sets.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Compact: false,
			Indent:  2,
		},
	}
}

// Load loads configuration from the CBORCTL_CONFIG environment variable.
// This is the only way to load configuration without an explicit path.
func Load() (*Config, error) {
	configPath := os.Getenv("CBORCTL_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("CBORCTL_CONFIG environment variable not set; " +
			"set it to the path of your cborctl.yaml config file, or use --config")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.LogFile = expandVars(cfg.LogFile, map[string]string{"HOME": os.Getenv("HOME")})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Output.Indent < 0 {
		errs = append(errs, fmt.Errorf("output.indent must not be negative"))
	}
	for _, tag := range c.Tags.Disable {
		if tag > 0xffffffff {
			errs = append(errs, fmt.Errorf("tags.disable: tag %d exceeds this format's tag width", tag))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ApplyTags registers the configured tag-disabling passthrough decoders
// onto parser, so that any tag named in Tags.Disable decodes as a plain
// Tagged item instead of its built-in semantic form.
func (c *Config) ApplyTags(parser *codec.Parser) {
	for _, tag := range c.Tags.Disable {
		tag := tag
		parser.AddSemanticTag(tag, func(inner codec.Item) (codec.Item, error) {
			return codec.TaggedItem(tag, inner), nil
		})
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the process environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
