// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrel-codec/kestrel/lib/codec"
	"github.com/kestrel-codec/kestrel/lib/config"
)

// unpackOne decodes a single top-level item out of data and renders it
// using prettyString, honoring cfg's compact/indent settings unless
// forceCompact overrides them.
func unpackOne(data []byte, cfg *config.Config, sourceName string, forceCompact bool) (string, error) {
	parser := codec.NewParser()
	cfg.ApplyTags(parser)

	var item codec.Item
	var decodeErr error
	if err := parser.Unpack(data, 0, func(got codec.Item, _ *uint64, derr error) {
		item, decodeErr = got, derr
	}); err != nil {
		return "", err
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode %s: %w", sourceName, decodeErr)
	}

	indent := cfg.Output.Indent
	if forceCompact || cfg.Output.Compact {
		indent = 0
	}
	return prettyString(item, indent), nil
}

func runUnpack(args []string) error {
	var hexInput bool
	var configPath string
	var compact bool

	flagSet := pflag.NewFlagSet("cborctl unpack", pflag.ContinueOnError)
	flagSet.BoolVar(&hexInput, "hex", false, "treat input as hex-encoded rather than raw binary")
	flagSet.StringVar(&configPath, "config", "", "path to a cborctl.yaml config file (or set CBORCTL_CONFIG)")
	flagSet.BoolVar(&compact, "compact", false, "force single-line output regardless of the config file")
	flagSet.BoolP("help", "h", false, "show help")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printUnpackHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printUnpackHelp(flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, sourceName, rest, err := readInput(flagSet.Args(), hexInput)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("expected at most one file argument, got %d", len(rest))
	}

	rendered, err := unpackOne(data, cfg, sourceName, compact)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func printUnpackHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cborctl unpack — decode this module's wire format into a JSON-ish rendering.

Usage: cborctl unpack [flags] [file]

Reads wire-format bytes from the file argument, or from stdin when none
is given, and prints a readable rendering of the decoded value. Unlike
encoding/json, the rendering distinguishes Bytes from Text (h'..' vs
"...") and Simple values from bool.

Flags:
`)
	flagSet.PrintDefaults()
}
