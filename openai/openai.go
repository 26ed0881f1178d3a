// Package openai implements [eli5.Completer] for OpenAI-compatible
// chat-completion endpoints.
//
// The default base URL points at Groq's OpenAI-compatible API. Any service
// speaking the same "messages in, one choice out" contract can be used by
// setting a different base URL.
package openai

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is used when neither the client nor the request names one.
	DefaultModel = "openai/gpt-oss-20b"

	completionsPath = "/chat/completions"
	replyPath       = "choices.0.message.content"
	errorPath       = "error.message"
	maxErrorBody    = 400
)

// apiRequest is the JSON body sent to the chat completions endpoint.
type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
