// Package bubbletea provides the Bubble Tea TUI for the eli5 chat.
package bubbletea

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eli5"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ReplyMsg carries the message appended when a pending request finished.
type ReplyMsg struct {
	Message eli5.Message
}

// CopiedMsg reports the outcome of copying a reply to the clipboard.
type CopiedMsg struct {
	Err error
}

// Config carries display and integration settings for the TUI.
type Config struct {
	ModelName string                 // shown in the header; empty = hidden
	Copy      func(text string) error // clipboard writer; nil = system clipboard
}

func (c Config) copyFunc() func(string) error {
	if c.Copy != nil {
		return c.Copy
	}
	return clipboard.WriteAll
}
