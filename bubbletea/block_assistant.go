package bubbletea

import "github.com/fwojciec/eli5"

var _ MessageBlock = (*AssistantMessageBlock)(nil)

// AssistantMessageBlock renders an assistant reply as markdown beside the
// robot avatar. Output is cached for the last width.
type AssistantMessageBlock struct {
	text     string
	renderer eli5.Renderer

	width    int
	rendered string
}

// NewAssistantMessageBlock creates an AssistantMessageBlock.
func NewAssistantMessageBlock(text string, renderer eli5.Renderer) *AssistantMessageBlock {
	return &AssistantMessageBlock{text: text, renderer: renderer}
}

func (b *AssistantMessageBlock) View(width int) string {
	if b.text == "" {
		return withAvatar(AssistantAvatar, width, func(int) string { return "" })
	}
	if b.rendered != "" && b.width == width {
		return b.rendered
	}
	b.width = width
	b.rendered = withAvatar(AssistantAvatar, width, func(w int) string {
		return b.renderer.Render(b.text, w)
	})
	return b.rendered
}

var _ MessageBlock = (*TypingBlock)(nil)

// TypingBlock is the busy indicator shown while a reply is pending.
type TypingBlock struct {
	spinner string
	styles  Styles
}

// NewTypingBlock creates a TypingBlock showing the current spinner frame.
func NewTypingBlock(spinner string, styles Styles) *TypingBlock {
	return &TypingBlock{spinner: spinner, styles: styles}
}

func (b *TypingBlock) View(width int) string {
	return withAvatar(AssistantAvatar, width, func(int) string {
		return b.styles.Assistant.Render(b.spinner) + " " + b.styles.Muted.Render("thinking...")
	})
}
