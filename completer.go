package eli5

import "context"

// Completer is a strategy interface for chat-completion endpoints. One call
// sends the whole conversation and returns one reply text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request carries the ordered messages and the model selection.
// The completer uses its own default model when Model is empty.
type Request struct {
	Model    string
	Messages []Message
}

// CompleterFunc adapts an ordinary function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f(ctx, req).
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
