package bubbletea

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message beside the child avatar.
type UserMessageBlock struct {
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	return withAvatar(UserAvatar, width, func(w int) string {
		return b.styles.UserBg.Inherit(b.styles.UserMsg).Width(w).Render(b.text)
	})
}
