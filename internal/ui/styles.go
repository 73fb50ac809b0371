// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui styles command output for terminals.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Accent style for file paths and task names
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for counts and secondary info
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for status words
	Bold = lipgloss.NewStyle().Bold(true)
)

// Printer styles text only when writing to a terminal.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter returns a Printer for w. Non-file writers are never styled.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Printer{w: w, styled: styled}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Path renders s with the accent style.
func (p *Printer) Path(s string) string { return p.render(Accent, s) }

// Muted renders s with the muted style.
func (p *Printer) Muted(s string) string { return p.render(Muted, s) }

// Bold renders s in bold.
func (p *Printer) Bold(s string) string { return p.render(Bold, s) }

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}
