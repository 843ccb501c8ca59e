// Package transcribe defines the speech-to-text seam. The gateway ships only
// the mock adapter; a real engine plugs in behind the same interface.
package transcribe

import (
	"context"
	"io"
)

// Transcriber converts an audio stream into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}
