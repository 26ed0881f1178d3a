package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// BlockCount returns the number of conversation blocks.
func BlockCount(m Model) int {
	return len(m.blocks)
}
