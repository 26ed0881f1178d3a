package eli5

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// State is a snapshot of a Session. History is a copy and may be retained.
type State struct {
	History []Message
	Draft   string
	Pending bool
}

// Session is the in-memory conversation for one open view. At most one
// request is in flight at a time: Begin moves the session from idle to
// pending and Finish moves it back, exactly once per Begin.
type Session struct {
	mu        sync.Mutex
	completer Completer
	model     string
	hint      string
	history   []Message
	draft     string
	pending   bool
	observers []func(State)
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithModel sets the model ID placed on every request.
func WithModel(model string) SessionOption {
	return func(s *Session) { s.model = model }
}

// WithHistory replaces the seeded greeting with msgs.
func WithHistory(msgs []Message) SessionOption {
	return func(s *Session) { s.history = slices.Clone(msgs) }
}

// WithObserver registers fn to be called with a snapshot after every change.
// Observers run on the goroutine that made the change, outside the lock.
func WithObserver(fn func(State)) SessionOption {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// WithFailureHint sets where the failure message tells the user to put the
// API key, e.g. "GROQ_API_KEY".
func WithFailureHint(hint string) SessionOption {
	return func(s *Session) { s.hint = hint }
}

// NewSession creates an idle session seeded with the greeting.
func NewSession(c Completer, opts ...SessionOption) *Session {
	s := &Session{
		completer: c,
		history:   []Message{AssistantMessage(Greeting)},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// History returns a copy of the conversation history.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Draft returns the current unsent input.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft records the unsent input.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	if s.draft == text {
		s.mu.Unlock()
		return
	}
	s.draft = text
	st := s.snapshot()
	s.mu.Unlock()
	s.notify(st)
}

// Submit sends text and blocks until the reply or failure has been appended.
// It reports false, without touching the session, when text is blank or a
// request is already pending.
func (s *Session) Submit(ctx context.Context, text string) bool {
	req, ok := s.Begin(text)
	if !ok {
		return false
	}
	s.Exchange(ctx, req)
	return true
}

// Begin appends text as a user message, clears the draft, marks the session
// pending and returns the request to send. The request holds the instruction
// message followed by the full history. Begin is a no-op returning false when
// text is blank after trimming or a request is already pending.
func (s *Session) Begin(text string) (Request, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Request{}, false
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return Request{}, false
	}
	s.history = append(s.history, UserMessage(text))
	s.draft = ""
	s.pending = true

	msgs := make([]Message, 0, len(s.history)+1)
	msgs = append(msgs, InstructionMessage())
	msgs = append(msgs, s.history...)
	req := Request{Model: s.model, Messages: msgs}
	st := s.snapshot()
	s.mu.Unlock()

	s.notify(st)
	return req, true
}

// Exchange performs the round trip for a request returned by Begin and
// records its outcome.
func (s *Session) Exchange(ctx context.Context, req Request) Message {
	reply, err := s.completer.Complete(ctx, req)
	msg, _ := s.Finish(reply, err)
	return msg
}

// Finish appends the outcome of the pending request and returns the session
// to idle. On success reply is appended verbatim; on failure the appended
// message is [FailureMessage]. Finish reports false and changes nothing when
// no request is pending.
func (s *Session) Finish(reply string, err error) (Message, bool) {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return Message{}, false
	}
	msg := AssistantMessage(reply)
	if err != nil {
		msg = FailureMessage(err, s.hint)
	}
	s.history = append(s.history, msg)
	s.pending = false
	st := s.snapshot()
	s.mu.Unlock()

	s.notify(st)
	return msg, true
}

func (s *Session) snapshot() State {
	return State{
		History: slices.Clone(s.history),
		Draft:   s.draft,
		Pending: s.pending,
	}
}

func (s *Session) notify(st State) {
	for _, fn := range s.observers {
		fn(st)
	}
}
