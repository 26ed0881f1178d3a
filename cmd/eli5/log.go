package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eli5"
)

// setupLogging sends the standard logger to path, or discards it when path
// is empty so nothing is written over the TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "eli5")
	if err != nil {
		return nil, fmt.Errorf("debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// logCompleter logs the duration and outcome of every round trip.
func logCompleter(next eli5.Completer) eli5.Completer {
	return eli5.CompleterFunc(func(ctx context.Context, req eli5.Request) (string, error) {
		start := time.Now()
		reply, err := next.Complete(ctx, req)
		if err != nil {
			log.Printf("request failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
			return "", err
		}
		log.Printf("reply in %s: %d bytes", time.Since(start).Round(time.Millisecond), len(reply))
		return reply, nil
	})
}

// logState returns a session observer that logs busy transitions.
func logState() func(eli5.State) {
	var pending atomic.Bool
	return func(st eli5.State) {
		if pending.Swap(st.Pending) == st.Pending {
			return
		}
		if st.Pending {
			log.Printf("request started: %d messages", len(st.History))
		} else {
			log.Printf("request finished: %d messages", len(st.History))
		}
	}
}
