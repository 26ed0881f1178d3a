package eli5

import "fmt"

// SystemPrompt is sent as the first message of every request. It is never
// part of the visible history.
const SystemPrompt = `You are a super friendly and fun teacher for little kids! 
Your job is to explain EVERYTHING as if you're talking to a 5-year-old child.
Rules you must always follow:
- Use very simple words that a young child would understand
- Use fun comparisons and silly analogies (like "imagine a cookie" or "it's like when you play with blocks")
- Keep sentences short and easy
- Add enthusiasm with exclamation marks!
- Use emojis to make things fun 🎉
- Never use big scary words — if you must, explain them right away in the simplest way
- Be warm, patient, and encouraging`

// Greeting seeds every new conversation.
const Greeting = "Hi there! 👋 I'm your super simple explainer! Ask me ANYTHING and I'll explain it like you're 5 years old! 🎈"

// DefaultFailureHint names where the credential is expected when no
// provider-specific hint is configured.
const DefaultFailureHint = "your environment"

// InstructionMessage returns the fixed system message that prefixes requests.
func InstructionMessage() Message {
	return Message{Role: RoleSystem, Content: SystemPrompt}
}

// FailureMessage converts a failed request into the assistant message shown
// in its place. hint names where the API key should be set.
func FailureMessage(err error, hint string) Message {
	if hint == "" {
		hint = DefaultFailureHint
	}
	return AssistantMessage(fmt.Sprintf(
		"Oops! Something went wrong 😢 — %v. Make sure your API key is set in %s!", err, hint))
}
