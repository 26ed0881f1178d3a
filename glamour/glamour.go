// Package glamour renders assistant markdown with charmbracelet/glamour.
package glamour

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/eli5"
)

// Interface compliance check.
var _ eli5.Renderer = (*Renderer)(nil)

const (
	defaultStyle = "dark"
	defaultWidth = 80
)

// Renderer implements [eli5.Renderer] on top of glamour. One term renderer
// is built per width and reused; glamour renderers are not safe for
// concurrent use, so calls are serialized.
type Renderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// New creates a Renderer using a glamour standard style such as "dark",
// "light", "dracula" or "notty". An empty style means "dark".
func New(style string) *Renderer {
	if style == "" {
		style = defaultStyle
	}
	return &Renderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns source rendered at width. If glamour fails, the source is
// returned unchanged so the reply is still shown.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tr, err := r.termRenderer(width)
	if err != nil {
		return source
	}
	out, err := tr.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) termRenderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}
