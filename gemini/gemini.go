// Package gemini implements [eli5.Completer] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. The SDK client is created on the
// first request and reused afterwards, so a missing API key is reported as a
// failed request rather than at startup.
package gemini

// DefaultModel is used when neither the client nor the request names one.
const DefaultModel = "gemini-2.5-flash"
