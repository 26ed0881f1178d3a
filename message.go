package eli5

// Message is one entry of a conversation. Messages are values and are never
// modified after they are appended to a history.
type Message struct {
	Role    Role
	Content string
}

// UserMessage returns a user message with the given content.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant message with the given content.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
