// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrel-codec/kestrel/lib/codec"
	"github.com/kestrel-codec/kestrel/lib/config"
)

// diagStream decodes a sequence of top-level items packed back to back
// out of data and writes one diagnostic-notation line per item to w,
// advancing through the input by each item's consumed byte count until
// the input is exhausted. sourceName labels errors only.
func diagStream(data []byte, cfg *config.Config, sourceName string, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input")
	}

	parser := codec.NewParser()
	cfg.ApplyTags(parser)

	offset := 0
	for offset < len(data) {
		var item codec.Item
		var consumed *uint64
		var decodeErr error
		if err := parser.Unpack(data, offset, func(got codec.Item, c *uint64, derr error) {
			item, consumed, decodeErr = got, c, derr
		}); err != nil {
			return err
		}
		if decodeErr != nil {
			return fmt.Errorf("%s: item at offset %d: %w", sourceName, offset, decodeErr)
		}
		fmt.Fprintln(w, item.String())
		offset = int(*consumed)
	}
	return nil
}

// runDiag is the CLI entry point for the diag subcommand.
func runDiag(args []string) error {
	var hexInput bool
	var configPath string

	flagSet := pflag.NewFlagSet("cborctl diag", pflag.ContinueOnError)
	flagSet.BoolVar(&hexInput, "hex", false, "treat input as hex-encoded rather than raw binary")
	flagSet.StringVar(&configPath, "config", "", "path to a cborctl.yaml config file (or set CBORCTL_CONFIG)")
	flagSet.BoolP("help", "h", false, "show help")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printDiagHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printDiagHelp(flagSet)
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

	return diagStream(data, cfg, sourceName, os.Stdout)
}

func printDiagHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cborctl diag — print a diagnostic-notation trace of a byte stream.

Usage: cborctl diag [flags] [file]

Decodes a sequence of top-level items packed back to back — not a
single value — and prints one line of diagnostic notation per item, in
the order they were encoded.

Flags:
`)
	flagSet.PrintDefaults()
}
