// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/kestrel-codec/kestrel/lib/config"
)

// logger is the CLI's structured logger, used for operational warnings
// that don't rise to a hard error. Mirrors the teacher's bureau-viewer
// convention of a text handler on stderr at warn level.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// loadConfig loads configuration from explicitPath (the --config flag)
// when given, falls back to CBORCTL_CONFIG when set, and otherwise
// returns the defaults — no file is required to run cborctl.
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
