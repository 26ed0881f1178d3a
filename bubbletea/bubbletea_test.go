package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eli5"
	bt "github.com/fwojciec/eli5/bubbletea"
	"github.com/fwojciec/eli5/mock"
	"github.com/stretchr/testify/require"
)

// newModel creates a model over a fresh session backed by c. Markdown is
// passed through unrendered.
func newModel(t *testing.T, c eli5.Completer, opts ...eli5.SessionOption) (bt.Model, *eli5.Session) {
	t.Helper()
	s := eli5.NewSession(c, opts...)
	return bt.New(s, &mock.Renderer{}, eli5.DefaultTheme(), bt.Config{}), s
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, c eli5.Completer, opts ...eli5.SessionOption) (bt.Model, *eli5.Session) {
	t.Helper()
	return initModelWithSize(t, c, 80, 24, opts...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, c eli5.Completer, width, height int, opts ...eli5.SessionOption) (bt.Model, *eli5.Session) {
	t.Helper()
	m, s := newModel(t, c, opts...)
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height}), s
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeText sends text as a single runes key press.
func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// replyWith returns a completer that always answers text.
func replyWith(text string) *mock.Completer {
	return &mock.Completer{CompleteFn: func(context.Context, eli5.Request) (string, error) {
		return text, nil
	}}
}
