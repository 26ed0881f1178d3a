package eli5

import "time"

// Transcript is a snapshot of one conversation taken for export.
type Transcript struct {
	ID        string
	Model     string
	Provider  string
	CreatedAt time.Time
	Messages  []Message
}
