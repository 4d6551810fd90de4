// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the cborctl and
// cborview commands. It centralizes the one legitimate raw I/O pattern
// that exists before or after a structured logger is wired up: fatal
// error reporting to stderr followed by process exit, for errors
// surfaced from main() before anything else has a chance to log them.
package process
