// Package goldmark renders assistant markdown to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
package goldmark

import "github.com/fwojciec/eli5"

// Interface compliance check.
var _ eli5.Renderer = (*Renderer)(nil)

const defaultWidth = 80

// Renderer implements [eli5.Renderer]. It keeps no per-message state;
// callers that re-render unchanged text at the same width cache the output.
type Renderer struct {
	r *ansiRenderer
}

// New creates a Renderer styled with theme.
func New(theme eli5.Theme) *Renderer {
	return &Renderer{r: newRenderer(theme)}
}

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered without reflow.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return r.r.render([]byte(source), width)
}
