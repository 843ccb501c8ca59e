// Package validate defines the speaking-evaluation seam. The gateway ships a
// stub evaluator that produces a canned assessment; a real LLM-backed
// evaluator plugs in behind the same interface.
package validate

import (
	"context"
	"encoding/json"
)

// SpeakingEvaluator scores a transcribed speaking response against its task.
type SpeakingEvaluator interface {
	Evaluate(ctx context.Context, task json.RawMessage, transcript string) (json.RawMessage, error)
}

// Stub is a SpeakingEvaluator returning a fixed passing assessment. It stands
// in for the LLM evaluation pipeline, which is out of scope for the gateway.
type Stub struct{}

// NewStub creates a stub evaluator.
func NewStub() *Stub {
	return &Stub{}
}

type stubEvaluation struct {
	TaskCompleted bool   `json:"task_completed"`
	IsAcceptable  bool   `json:"is_acceptable"`
	ScoreOutOf10  int    `json:"score_out_of_10"`
	Feedback      string `json:"feedback"`
	Transcription string `json:"transcription"`
}

// Evaluate implements SpeakingEvaluator.
func (s *Stub) Evaluate(ctx context.Context, task json.RawMessage, transcript string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return json.Marshal(stubEvaluation{
		TaskCompleted: true,
		IsAcceptable:  true,
		ScoreOutOf10:  7,
		Feedback:      "Placeholder assessment of the speaking response.",
		Transcription: transcript,
	})
}
