// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrel-codec/kestrel/internal/treeview"
	"github.com/kestrel-codec/kestrel/lib/codec"
)

func runView(args []string) error {
	var hexInput bool
	var configPath string

	flagSet := pflag.NewFlagSet("cborctl view", pflag.ContinueOnError)
	flagSet.BoolVar(&hexInput, "hex", false, "treat input as hex-encoded rather than raw binary")
	flagSet.StringVar(&configPath, "config", "", "path to a cborctl.yaml config file (or set CBORCTL_CONFIG)")
	flagSet.BoolP("help", "h", false, "show help")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printViewHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printViewHelp(flagSet)
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

	parser := codec.NewParser()
	cfg.ApplyTags(parser)

	var item codec.Item
	var decodeErr error
	if err := parser.Unpack(data, 0, func(got codec.Item, _ *uint64, derr error) {
		item, decodeErr = got, derr
	}); err != nil {
		return err
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s: %w", sourceName, decodeErr)
	}

	return treeview.Run(item, sourceName)
}

func printViewHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cborctl view — open an interactive tree browser over a decoded value.

Usage: cborctl view [flags] [file]

Equivalent to running the cborview binary directly against the same
file.

Flags:
`)
	flagSet.PrintDefaults()
}
