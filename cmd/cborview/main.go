// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// cborview is a standalone TUI for browsing a decoded value encoded in
// this module's wire format. Reads a file argument (or stdin), decodes
// it, and renders an expandable/collapsible tree.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrel-codec/kestrel/internal/treeview"
	"github.com/kestrel-codec/kestrel/lib/codec"
	"github.com/kestrel-codec/kestrel/lib/config"
	"github.com/kestrel-codec/kestrel/lib/process"
	"github.com/kestrel-codec/kestrel/lib/version"
)

// logger is this binary's structured logger, used for operational
// warnings that don't rise to a hard error. Mirrors the teacher's
// bureau-viewer convention of a text handler on stderr at warn level —
// chosen here too since cborview, like bureau-viewer, is a full-screen
// TUI where stray fmt.Fprintf output would corrupt the alt-screen.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	// Handle --version before flag parsing to match cborctl and the
	// rest of this module's binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Print("cborview")
		return nil
	}

	var hexMode bool
	var configPath string

	flagSet := pflag.NewFlagSet("cborview", pflag.ContinueOnError)
	flagSet.BoolVar(&hexMode, "hex", false, "treat input as hex-encoded rather than raw binary")
	flagSet.StringVar(&configPath, "config", "", "path to a cborctl.yaml config file (or set CBORCTL_CONFIG)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, sourceName, err := readSource(flagSet.Args())
	if err != nil {
		return err
	}
	if hexMode {
		data, err = decodeHexInput(data)
		if err != nil {
			return err
		}
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

func loadConfig(explicitPath string) (*config.Config, error) {
	if explicitPath != "" {
		if envPath := os.Getenv("CBORCTL_CONFIG"); envPath != "" && envPath != explicitPath {
			logger.Warn("--config overrides CBORCTL_CONFIG", "flag", explicitPath, "env", envPath)
		}
		return config.LoadFile(explicitPath)
	}
	if os.Getenv("CBORCTL_CONFIG") == "" {
		return config.Default(), nil
	}
	return config.Load()
}

// readSource reads the file named by the sole positional argument, or
// stdin when none is given.
func readSource(args []string) (data []byte, name string, err error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one file argument, got %d", len(args))
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return data, args[0], nil
	}
	data, err = readAllStdin()
	return data, "stdin", err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cborview — interactive tree browser for this module's wire format.

Usage: cborview [flags] [file]

With no file argument, reads from stdin.

Flags:
`)
	flagSet.PrintDefaults()
}
