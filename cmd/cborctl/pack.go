// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

// packJSON parses a single JSON value out of input and encodes it in
// this module's wire format.
func packJSON(input []byte) ([]byte, error) {
	var value any
	if err := json.Unmarshal(input, &value); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	data, err := codec.Pack(value)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	return data, nil
}

func runPack(args []string) error {
	var hexOutput bool

	flagSet := pflag.NewFlagSet("cborctl pack", pflag.ContinueOnError)
	flagSet.BoolVar(&hexOutput, "hex", false, "print hex-encoded bytes instead of raw binary")
	flagSet.BoolP("help", "h", false, "show help")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printPackHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printPackHelp(flagSet)
		return nil
	}

	rest := flagSet.Args()
	var input []byte
	var err error
	if len(rest) == 1 {
		input, err = os.ReadFile(rest[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", rest[0], err)
		}
	} else if len(rest) == 0 {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		return fmt.Errorf("expected at most one file argument, got %d", len(rest))
	}

	data, err := packJSON(input)
	if err != nil {
		return err
	}

	if hexOutput {
		fmt.Println(hex.EncodeToString(data))
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printPackHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cborctl pack — encode JSON into this module's wire format.

Usage: cborctl pack [flags] [file]

Reads a single JSON value from the file argument, or from stdin when
none is given, and writes its encoding to stdout.

Flags:
`)
	flagSet.PrintDefaults()
}
