package eli5

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrMalformedResponse indicates the endpoint answered with a body that
	// does not carry a reply where one is expected.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyReply indicates the endpoint answered without any reply text.
	ErrEmptyReply = errors.New("empty reply")
)
