// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// cborctl is a command-line tool for producing and inspecting data
// encoded in this module's non-canonical CBOR-shaped wire format: pack
// JSON into bytes, unpack bytes into a JSON-ish rendering, print a
// diagnostic-notation trace of a byte stream, or open an interactive
// tree browser.
package main

import (
	"fmt"
	"os"

	"github.com/kestrel-codec/kestrel/lib/process"
	"github.com/kestrel-codec/kestrel/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == "--version" {
		version.Print("cborctl")
		return nil
	}
	if len(args) == 0 {
		printHelp()
		return nil
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "pack":
		return runPack(rest)
	case "unpack":
		return runUnpack(rest)
	case "diag":
		return runDiag(rest)
	case "view":
		return runView(rest)
	case "-h", "--help", "help":
		printHelp()
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q (want pack, unpack, diag, or view)", sub)
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `cborctl — produce and inspect this module's non-canonical CBOR-shaped encoding.

Usage:
  cborctl <subcommand> [flags] [file]

Subcommands:
  pack     encode JSON from stdin (or a file) into the wire format
  unpack   decode the wire format from stdin (or a file) into a JSON-ish rendering
  diag     decode a stream of top-level items, printing one diagnostic line each
  view     open an interactive tree browser over a decoded value

Run "cborctl <subcommand> --help" for subcommand-specific flags.

cborctl --version   print build information
`)
}
