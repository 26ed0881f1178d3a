package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Avatars shown beside each row of the conversation.
const (
	AssistantAvatar = "🤖"
	UserAvatar      = "🧒"
)

// MessageBlock is a renderable element in the conversation.
// View takes a width parameter so the root model controls layout and blocks
// are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// withAvatar lays out avatar to the left of a body rendered by render at the
// remaining width.
func withAvatar(avatar string, width int, render func(width int) string) string {
	gutter := avatar + " "
	bodyWidth := max(width-runewidth.StringWidth(gutter), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, gutter, render(bodyWidth))
}
