// Package mock provides test doubles for eli5 interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/eli5"
)

// Interface compliance checks.
var (
	_ eli5.Completer = (*Completer)(nil)
	_ eli5.Renderer  = (*Renderer)(nil)
)

// Completer is a test double for eli5.Completer.
// Set CompleteFn before calling Complete.
type Completer struct {
	CompleteFn func(ctx context.Context, req eli5.Request) (string, error)
}

// Complete delegates to CompleteFn.
func (c *Completer) Complete(ctx context.Context, req eli5.Request) (string, error) {
	return c.CompleteFn(ctx, req)
}

// Renderer is a test double for eli5.Renderer. RenderFn is nil-safe: the
// source is returned unchanged when it is not set.
type Renderer struct {
	RenderFn func(source string, width int) string
}

// Render delegates to RenderFn.
func (r *Renderer) Render(source string, width int) string {
	if r.RenderFn == nil {
		return source
	}
	return r.RenderFn(source, width)
}
