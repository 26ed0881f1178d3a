package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eli5"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	UserMsg   lipgloss.Style
	Assistant lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	UserBg    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t eli5.Theme) Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Italic(true),
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(ansiColor(t.Assistant)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		UserBg:    lipgloss.NewStyle().Background(ansiColor(t.UserBg)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
