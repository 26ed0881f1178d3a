package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/eli5"
	bt "github.com/fwojciec/eli5/bubbletea"
	"github.com/fwojciec/eli5/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes cmd, expanding batches, and returns every message produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, runCmd(c)...)
	}
	return msgs
}

// findReply returns the first ReplyMsg in msgs.
func findReply(t *testing.T, msgs []tea.Msg) bt.ReplyMsg {
	t.Helper()
	for _, msg := range msgs {
		if reply, ok := msg.(bt.ReplyMsg); ok {
			return reply
		}
	}
	require.FailNow(t, "no ReplyMsg produced")
	return bt.ReplyMsg{}
}

func TestNew(t *testing.T) {
	t.Parallel()

	m, s := newModel(t, replyWith("ok"))

	assert.False(t, m.Pending())
	assert.Empty(t, m.Notice())
	assert.Equal(t, "Initializing...", m.View())
	assert.Len(t, s.History(), 1)
}

func TestNew_SeedsInputFromDraft(t *testing.T) {
	t.Parallel()

	s := eli5.NewSession(replyWith("ok"))
	s.SetDraft("half a question")

	m := bt.New(s, &mock.Renderer{}, eli5.DefaultTheme(), bt.Config{})

	assert.Equal(t, "half a question", m.Input.Value())
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("window size initializes viewport", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))

		assert.Equal(t, 80, m.Viewport.Width)
		assert.Equal(t, 18, m.Viewport.Height) // 24 - header(2) - status(1) - input(3)
		assert.Contains(t, m.View(), "ELI5 Bot")
		assert.Contains(t, m.View(), "super simple explainer")
	})

	t.Run("window size resize updates viewport dimensions", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

		assert.Equal(t, 120, m.Viewport.Width)
		assert.Equal(t, 34, m.Viewport.Height)
	})

	t.Run("tiny terminal keeps one viewport row", func(t *testing.T) {
		t.Parallel()

		m, _ := initModelWithSize(t, replyWith("ok"), 20, 3)

		assert.Equal(t, 1, m.Viewport.Height)
	})

	t.Run("header shows model name", func(t *testing.T) {
		t.Parallel()

		s := eli5.NewSession(replyWith("ok"))
		m := bt.New(s, &mock.Renderer{}, eli5.DefaultTheme(), bt.Config{ModelName: "tiny-model"})
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

		assert.Contains(t, m.View(), "tiny-model")
	})

	t.Run("typing updates input and session draft", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("ok"))
		m = typeText(t, m, "why is the sky blue")

		assert.Equal(t, "why is the sky blue", m.Input.Value())
		assert.Equal(t, "why is the sky blue", s.Draft())
	})

	t.Run("status line counts graphemes", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))
		m = typeText(t, m, "héllo👍🏽")

		assert.Contains(t, m.View(), "6 chars")
	})

	t.Run("status line shows key hints", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))

		assert.Contains(t, m.View(), "Enter to send")
		assert.NotContains(t, m.View(), "chars")
	})

	t.Run("alt+enter inserts a newline", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("ok"))
		m = typeText(t, m, "a")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
		m = typeText(t, m, "b")

		assert.Equal(t, "a\nb", m.Input.Value())
		assert.False(t, m.Pending())
		assert.Len(t, s.History(), 1)
	})

	t.Run("enter with blank input is a no-op", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("ok"))
		m = typeText(t, m, "   ")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)

		assert.Nil(t, cmd)
		assert.False(t, m.Pending())
		assert.Len(t, s.History(), 1)
	})

	t.Run("enter submits and shows typing indicator", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("ok"))
		m = typeText(t, m, "  what is gravity?  ")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)

		require.NotNil(t, cmd)
		assert.True(t, m.Pending())
		assert.Empty(t, m.Input.Value())
		assert.Empty(t, s.Draft())
		assert.Equal(t, 2, bt.BlockCount(m))

		h := s.History()
		require.Len(t, h, 2)
		assert.Equal(t, eli5.UserMessage("what is gravity?"), h[1])

		view := m.View()
		assert.Contains(t, view, "what is gravity?")
		assert.Contains(t, view, "thinking...")
		assert.Contains(t, view, "Thinking really hard...")
	})

	t.Run("reply clears pending and renders answer", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("Gravity is like a big hug!"))
		m = typeText(t, m, "what is gravity?")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)

		reply := findReply(t, runCmd(cmd))
		assert.Equal(t, eli5.AssistantMessage("Gravity is like a big hug!"), reply.Message)

		m = updateModel(t, m, reply)

		assert.False(t, m.Pending())
		assert.Equal(t, 3, bt.BlockCount(m))
		assert.Len(t, s.History(), 3)
		content := bt.RenderContent(m)
		assert.Contains(t, content, "Gravity is like a big hug!")
		assert.NotContains(t, content, "thinking...")
	})

	t.Run("failure renders the failure message", func(t *testing.T) {
		t.Parallel()

		c := &mock.Completer{CompleteFn: func(context.Context, eli5.Request) (string, error) {
			return "", errors.New("connection refused")
		}}
		m, s := initModel(t, c, eli5.WithFailureHint("GROQ_API_KEY"))
		m = typeText(t, m, "hi")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)
		m = updateModel(t, m, findReply(t, runCmd(cmd)))

		assert.False(t, m.Pending())
		h := s.History()
		require.Len(t, h, 3)
		assert.Equal(t, eli5.FailureMessage(errors.New("connection refused"), "GROQ_API_KEY"), h[2])
		assert.Contains(t, bt.RenderContent(m), "connection refused")
	})

	t.Run("input is ignored while pending", func(t *testing.T) {
		t.Parallel()

		m, s := initModel(t, replyWith("ok"))
		m = typeText(t, m, "first")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.Pending())

		m = typeText(t, m, "second")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)

		assert.Nil(t, cmd)
		assert.Empty(t, m.Input.Value())
		assert.Empty(t, s.Draft())
		assert.Len(t, s.History(), 2)
	})

	t.Run("spinner tick is dropped when idle", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))
		_, cmd := m.Update(m.Spinner.Tick())

		assert.Nil(t, cmd)
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("esc quits", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("pgup scrolls away from the bottom", func(t *testing.T) {
		t.Parallel()

		var history []eli5.Message
		for i := range 40 {
			history = append(history, eli5.AssistantMessage(fmt.Sprintf("line %d", i)))
		}
		m, _ := initModel(t, replyWith("ok"), eli5.WithHistory(history))
		require.True(t, m.Viewport.AtBottom())

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyPgUp})

		assert.False(t, m.Viewport.AtBottom())
	})

	t.Run("spinner tick keeps scroll position while pending", func(t *testing.T) {
		t.Parallel()

		var history []eli5.Message
		for i := range 40 {
			history = append(history, eli5.AssistantMessage(fmt.Sprintf("line %d", i)))
		}
		m, _ := initModel(t, replyWith("ok"), eli5.WithHistory(history))
		m = typeText(t, m, "why?")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.Pending())
		require.True(t, m.Viewport.AtBottom())

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
		require.False(t, m.Viewport.AtBottom())
		offset := m.Viewport.YOffset

		m = updateModel(t, m, m.Spinner.Tick())

		assert.False(t, m.Viewport.AtBottom())
		assert.Equal(t, offset, m.Viewport.YOffset)
		assert.Contains(t, bt.RenderContent(m), "thinking...")
	})

	t.Run("reply scrolls back to the newest message", func(t *testing.T) {
		t.Parallel()

		var history []eli5.Message
		for i := range 40 {
			history = append(history, eli5.AssistantMessage(fmt.Sprintf("line %d", i)))
		}
		m, _ := initModel(t, replyWith("Because!"), eli5.WithHistory(history))
		m = typeText(t, m, "why?")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
		require.False(t, m.Viewport.AtBottom())

		m = updateModel(t, m, findReply(t, runCmd(cmd)))

		assert.True(t, m.Viewport.AtBottom())
	})

	t.Run("resize keeps scroll position", func(t *testing.T) {
		t.Parallel()

		var history []eli5.Message
		for i := range 40 {
			history = append(history, eli5.AssistantMessage(fmt.Sprintf("line %d", i)))
		}
		m, _ := initModel(t, replyWith("ok"), eli5.WithHistory(history))
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
		require.False(t, m.Viewport.AtBottom())

		m = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})

		assert.False(t, m.Viewport.AtBottom())
	})
}

func TestModel_Copy(t *testing.T) {
	t.Parallel()

	newCopyModel := func(t *testing.T, c eli5.Completer, write func(string) error) (bt.Model, *eli5.Session) {
		t.Helper()
		s := eli5.NewSession(c)
		m := bt.New(s, &mock.Renderer{}, eli5.DefaultTheme(), bt.Config{Copy: write})
		return updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24}), s
	}

	t.Run("copies the latest assistant reply", func(t *testing.T) {
		t.Parallel()

		var copied string
		m, _ := newCopyModel(t, replyWith("Rainbows are sunlight splitting!"), func(text string) error {
			copied = text
			return nil
		})
		m = typeText(t, m, "rainbows?")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(bt.Model)
		m = updateModel(t, m, findReply(t, runCmd(cmd)))

		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
		require.NotNil(t, cmd)
		msg := cmd()
		m = updateModel(t, m, msg)

		assert.Equal(t, "Rainbows are sunlight splitting!", copied)
		assert.Equal(t, "Copied the last answer! 📋", m.Notice())
		assert.Contains(t, m.View(), "Copied the last answer!")
	})

	t.Run("copies greeting before any reply", func(t *testing.T) {
		t.Parallel()

		var copied string
		m, _ := newCopyModel(t, replyWith("ok"), func(text string) error {
			copied = text
			return nil
		})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, eli5.Greeting, copied)
	})

	t.Run("nothing to copy without assistant messages", func(t *testing.T) {
		t.Parallel()

		s := eli5.NewSession(replyWith("ok"), eli5.WithHistory(nil))
		m := bt.New(s, &mock.Renderer{}, eli5.DefaultTheme(), bt.Config{Copy: func(string) error {
			t.Error("unexpected copy")
			return nil
		}})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

		assert.Nil(t, cmd)
	})

	t.Run("copy failure is reported", func(t *testing.T) {
		t.Parallel()

		m, _ := newCopyModel(t, replyWith("ok"), func(string) error {
			return errors.New("no clipboard")
		})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
		require.NotNil(t, cmd)
		m = updateModel(t, m, cmd())

		assert.Equal(t, "Could not copy: no clipboard", m.Notice())
	})

	t.Run("typing clears the notice", func(t *testing.T) {
		t.Parallel()

		m, _ := newCopyModel(t, replyWith("ok"), func(string) error { return nil })
		m = updateModel(t, m, bt.CopiedMsg{})
		require.NotEmpty(t, m.Notice())

		m = typeText(t, m, "x")

		assert.Empty(t, m.Notice())
	})
}

func TestRenderContent(t *testing.T) {
	t.Parallel()

	t.Run("separates blocks with a blank line", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"), eli5.WithHistory([]eli5.Message{
			eli5.AssistantMessage("one"),
			eli5.UserMessage("two"),
		}))

		content := bt.RenderContent(m)
		lines := strings.Split(content, "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "one")
		assert.Empty(t, strings.TrimSpace(lines[1]))
		assert.Contains(t, lines[2], "two")
	})

	t.Run("user rows carry the child avatar", func(t *testing.T) {
		t.Parallel()

		m, _ := initModel(t, replyWith("ok"), eli5.WithHistory([]eli5.Message{
			eli5.UserMessage("hello"),
		}))

		assert.True(t, strings.HasPrefix(bt.RenderContent(m), bt.UserAvatar))
	})

	t.Run("assistant text goes through the renderer", func(t *testing.T) {
		t.Parallel()

		s := eli5.NewSession(replyWith("ok"))
		r := &mock.Renderer{RenderFn: func(source string, _ int) string {
			return "<" + source + ">"
		}}
		m := bt.New(s, r, eli5.DefaultTheme(), bt.Config{})
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 200, Height: 24})

		assert.Contains(t, bt.RenderContent(m), "<"+eli5.Greeting+">")
		assert.Equal(t, eli5.Greeting, s.History()[0].Content)
	})
}

func TestModel_FullCycle(t *testing.T) {
	t.Parallel()

	t.Run("question and answer", func(t *testing.T) {
		t.Parallel()

		m, s := newModel(t, replyWith("Gravity is like a big hug!"))
		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("what is gravity?")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Gravity is like a big hug!")) &&
				bytes.Contains(out, []byte("Enter to send"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.False(t, final.Pending())
		assert.Equal(t, []eli5.Message{
			eli5.AssistantMessage(eli5.Greeting),
			eli5.UserMessage("what is gravity?"),
			eli5.AssistantMessage("Gravity is like a big hug!"),
		}, s.History())
	})

	t.Run("failure then retry", func(t *testing.T) {
		t.Parallel()

		calls := 0
		c := &mock.Completer{CompleteFn: func(context.Context, eli5.Request) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("connection refused")
			}
			return "Second time lucky!", nil
		}}
		m, s := newModel(t, c)
		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("hi")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("connection refused"))
		}, teatest.WithDuration(5*time.Second))

		tm.Type("again")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Second time lucky!"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))

		h := s.History()
		require.Len(t, h, 5)
		assert.Contains(t, h[2].Content, "Oops! Something went wrong")
		assert.Equal(t, "Second time lucky!", h[4].Content)
	})

	t.Run("existing history renders on init", func(t *testing.T) {
		t.Parallel()

		m, _ := newModel(t, replyWith("ok"), eli5.WithHistory([]eli5.Message{
			eli5.AssistantMessage("Hello friend!"),
			eli5.UserMessage("why do cats purr"),
		}))
		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Hello friend!")) &&
				bytes.Contains(out, []byte("why do cats purr"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
	})
}
