// Package json writes conversation transcripts as JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/eli5"
)

// Version is the transcript envelope version written by this package.
const Version = 1

// envelope is the v1 wire format for an exported transcript.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	Model     string       `json:"model,omitempty"`
	Provider  string       `json:"provider,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Messages  []messageDTO `json:"messages"`
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MarshalTranscript serializes a Transcript to indented JSON in v1 envelope
// format.
func MarshalTranscript(t eli5.Transcript) ([]byte, error) {
	env := envelope{
		Version:   Version,
		ID:        t.ID,
		Model:     t.Model,
		Provider:  t.Provider,
		CreatedAt: t.CreatedAt.UTC(),
		Messages:  make([]messageDTO, len(t.Messages)),
	}
	for i, msg := range t.Messages {
		if !msg.Role.Valid() {
			return nil, fmt.Errorf("message %d: unknown role %q", i, msg.Role)
		}
		env.Messages[i] = messageDTO{Role: string(msg.Role), Content: msg.Content}
	}
	return json.MarshalIndent(env, "", "  ")
}

// Save writes a Transcript to path, creating parent directories as needed.
// The file is written to a temporary sibling and renamed into place.
func Save(path string, t eli5.Transcript) error {
	data, err := MarshalTranscript(t)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
