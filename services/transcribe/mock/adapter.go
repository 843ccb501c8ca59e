// Package mock provides a mock transcriber for running the gateway without a
// speech model. It drains the audio stream and cycles through a fixed set of
// transcripts.
package mock

import (
	"context"
	"io"
	"sync"
)

// DefaultTranscripts provides sample transcripts for simulation.
var DefaultTranscripts = []string{
	"Guten Morgen, der Zug nach Berlin faehrt um acht Uhr.",
	"Ich moechte bitte einen Kaffee bestellen.",
	"Wie komme ich zum Bahnhof?",
}

// Adapter implements transcribe.Transcriber with canned responses.
type Adapter struct {
	mu   sync.Mutex
	next int
}

// New creates a new mock transcriber.
func New() *Adapter {
	return &Adapter{}
}

// Transcribe reads the audio to completion and returns the next canned
// transcript. The read keeps the contract honest: a real adapter would
// consume the stream too.
func (a *Adapter) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, audio); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	text := DefaultTranscripts[a.next%len(DefaultTranscripts)]
	a.next++
	return text, nil
}
