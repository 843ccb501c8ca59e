// Package generate defines the content-generation seam. The gateway ships a
// stub generator that produces canned task JSON; a real LLM-backed generator
// plugs in behind the same interface.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Skills accepted by the generator.
const (
	SkillListening = "listening"
	SkillReading   = "reading"
	SkillWriting   = "writing"
	SkillSpeaking  = "speaking"
)

// TaskRequest describes one generation request.
type TaskRequest struct {
	Skill string `validate:"required,oneof=listening reading writing speaking"`
	Topic string `validate:"required"`
	Level string `validate:"required,oneof=A1 A2 B1 B2"`
}

// ContentGenerator produces learning-task content for a skill/topic/level.
type ContentGenerator interface {
	Generate(ctx context.Context, req TaskRequest) (json.RawMessage, error)
}

// Stub is a ContentGenerator returning a canned single-item task list. It
// stands in for the LLM pipeline, which is out of scope for the gateway.
type Stub struct{}

// NewStub creates a stub generator.
func NewStub() *Stub {
	return &Stub{}
}

type stubTask struct {
	ID       int          `json:"id"`
	Type     string       `json:"type"`
	Question string       `json:"question"`
	Metadata stubMetadata `json:"metadata"`
}

type stubMetadata struct {
	Level     string `json:"level"`
	Skill     string `json:"skill"`
	Topic     string `json:"topic"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Generate implements ContentGenerator.
func (s *Stub) Generate(ctx context.Context, req TaskRequest) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tasks := []stubTask{{
		ID:       1,
		Type:     "MultipleChoice",
		Question: fmt.Sprintf("Placeholder %s task about %q", req.Skill, req.Topic),
		Metadata: stubMetadata{
			Level:     req.Level,
			Skill:     req.Skill,
			Topic:     req.Topic,
			Source:    "stub",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}}

	return json.Marshal(tasks)
}
