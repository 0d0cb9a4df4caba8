package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// styles groups the lipgloss styles used by renderers. An unstyled set is
// substituted when color is off.
type styles struct {
	Header  lipgloss.Style
	Path    lipgloss.Style
	Kind    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		s := lipgloss.NewStyle()
		return styles{Header: s, Path: s, Kind: s, Success: s, Error: s, Muted: s}
	}
	return styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
