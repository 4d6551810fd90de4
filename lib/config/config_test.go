// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Compact {
		t.Error("expected output.compact=false by default")
	}
	if cfg.Output.Indent != 2 {
		t.Errorf("expected output.indent=2, got %d", cfg.Output.Indent)
	}
}

func TestLoad_RequiresEnvVar(t *testing.T) {
	origConfig := os.Getenv("CBORCTL_CONFIG")
	defer os.Setenv("CBORCTL_CONFIG", origConfig)
	os.Unsetenv("CBORCTL_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CBORCTL_CONFIG not set, got nil")
	}
}

func TestLoad_WithEnvVar(t *testing.T) {
	origConfig := os.Getenv("CBORCTL_CONFIG")
	defer os.Setenv("CBORCTL_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cborctl.yaml")

	configContent := `
output:
  compact: true
  indent: 4
tags:
  disable: [11, 23]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("CBORCTL_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.Output.Compact {
		t.Error("expected output.compact=true")
	}
	if cfg.Output.Indent != 4 {
		t.Errorf("expected output.indent=4, got %d", cfg.Output.Indent)
	}
	if len(cfg.Tags.Disable) != 2 || cfg.Tags.Disable[0] != 11 || cfg.Tags.Disable[1] != 23 {
		t.Errorf("expected tags.disable=[11 23], got %v", cfg.Tags.Disable)
	}
}

func TestLoadFile_ExpandsLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cborctl.yaml")

	configContent := `
log_file: "${HOME}/cborctl.log"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	origHome := os.Getenv("HOME")
	defer os.Setenv("HOME", origHome)
	os.Setenv("HOME", "/home/tester")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.LogFile != "/home/tester/cborctl.log" {
		t.Errorf("expected expanded log_file, got %q", cfg.LogFile)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/cborctl",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/cborctl",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "negative indent",
			modify: func(c *Config) {
				c.Output.Indent = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyTags(t *testing.T) {
	cfg := Default()
	cfg.Tags.Disable = []uint64{11}

	parser := codec.NewParser()
	cfg.ApplyTags(parser)

	data, err := codec.Pack(codec.TaggedItem(11, codec.Unsigned(1700000000)))
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got codec.Item
	if err := parser.Unpack(data, 0, func(item codec.Item, _ *uint64, err error) {
		if err != nil {
			t.Fatalf("Unpack failed: %v", err)
		}
		got = item
	}); err != nil {
		t.Fatalf("Unpack call failed: %v", err)
	}

	if got.Kind != codec.KindTagged || got.Tag != 11 {
		t.Errorf("expected a raw tag-11 item with disabled decoding, got %v", got)
	}
}
