// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for cborctl and
// cborview.
//
// Configuration is loaded from a single file specified by either the
// CBORCTL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search, so a run's configuration is always traceable to one of
// those two sources.
//
// [Config].Tags.Disable names tag numbers that should bypass this
// package's built-in Date/URI/RegExp decoding and come back as plain
// tagged items instead; [Config.ApplyTags] wires that list onto a
// [codec.Parser].
//
// ${HOME} and ${VAR:-default} expansion is available via the unexported
// expandVars helper and applied to LogFile after loading.
package config
