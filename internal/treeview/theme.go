// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the cborview tree browser. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Kind colors, one per codec.Kind family.
	NumberColor  lipgloss.Color
	StringColor  lipgloss.Color
	BytesColor   lipgloss.Color
	ContainerKey lipgloss.Color
	TagColor     lipgloss.Color
	BoolColor    lipgloss.Color
	NullColor    lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	NumberColor:  lipgloss.Color("75"),  // blue
	StringColor:  lipgloss.Color("114"), // green
	BytesColor:   lipgloss.Color("208"), // orange
	ContainerKey: lipgloss.Color("141"), // light purple
	TagColor:     lipgloss.Color("220"), // yellow/amber
	BoolColor:    lipgloss.Color("196"), // red
	NullColor:    lipgloss.Color("240"), // dim gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
