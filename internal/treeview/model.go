// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package treeview implements the cborview TUI: an expandable/collapsible
// list rendering of a decoded codec.Item tree, following the bubbletea
// program structure cmd/bureau-viewer uses (tea.Model with Init/Update/View,
// lipgloss styling, a termenv color profile forced to ANSI256).
package treeview

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

// Model is the bubbletea model for the tree browser.
type Model struct {
	tree   *tree
	cursor int
	offset int // first visible row, for scrolling
	height int
	width  int

	keys  KeyMap
	theme Theme

	rowStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	headerStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	sourceName    string
}

// New constructs a Model browsing root, labeling the header with
// sourceName (typically the input file path, or "stdin").
func New(root codec.Item, sourceName string) Model {
	// Force a color profile rather than relying on auto-detection, which
	// produces uncolored output when stdout isn't a TTY (e.g. piped to a
	// pager) — matches the teacher's markdown renderer's reasoning.
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	theme := DefaultTheme
	return Model{
		tree:          newTree(root),
		keys:          DefaultKeyMap,
		theme:         theme,
		rowStyle:      renderer.NewStyle().Foreground(theme.NormalText),
		selectedStyle: renderer.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		headerStyle:   renderer.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		helpStyle:     renderer.NewStyle().Foreground(theme.HelpText),
		sourceName:    sourceName,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.pageSize())
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.pageSize())
		case key.Matches(msg, m.keys.Toggle):
			m.tree.toggle(m.cursor)
			if m.cursor >= len(m.tree.visible) {
				m.cursor = len(m.tree.visible) - 1
			}
		}
	}
	return m, nil
}

func (m *Model) pageSize() int {
	if m.height <= 4 {
		return 10
	}
	return m.height - 4
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := len(m.tree.visible) - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if visibleRows := m.pageSize(); m.cursor >= m.offset+visibleRows {
		m.offset = m.cursor - visibleRows + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.headerStyle.Render(fmt.Sprintf("cborview — %s", m.sourceName))

	rows := m.pageSize()
	start := m.offset
	end := start + rows
	if end > len(m.tree.visible) {
		end = len(m.tree.visible)
	}

	body := ""
	for i := start; i < end; i++ {
		n := m.tree.nodes[m.tree.visible[i]]
		line := renderRow(n)
		if i == m.cursor {
			body += m.selectedStyle.Render(line) + "\n"
		} else {
			body += m.rowStyle.Render(line) + "\n"
		}
	}

	help := m.helpStyle.Render("↑/↓ move · enter/space toggle · q quit")
	return header + "\n\n" + body + "\n" + help
}

// Run starts the bubbletea program over root and blocks until the user
// quits.
func Run(root codec.Item, sourceName string) error {
	program := tea.NewProgram(New(root, sourceName), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
