// Package store holds accepted events in a bounded in-memory buffer. Nothing
// is ever written to disk: the store exists so the listing endpoint has
// something to show, not as durable storage.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sprachlab/event-gateway/models"
)

// DefaultCapacity bounds the store when no capacity is configured.
const DefaultCapacity = 1000

// Memory is a mutex-guarded, capacity-bounded event buffer. When full, the
// oldest event is evicted. Safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	events   []models.StoredEvent
	capacity int
}

// NewMemory creates a store bounded to the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		events:   make([]models.StoredEvent, 0, capacity),
		capacity: capacity,
	}
}

// Append stamps the event with a fresh receipt ID and the current UTC time,
// stores it, and returns the stored record. Duplicate event IDs are stored
// as-is: the store enforces no uniqueness.
func (m *Memory) Append(ev models.Event) models.StoredEvent {
	stored := models.StoredEvent{
		ReceiptID:  uuid.New(),
		ReceivedAt: time.Now().UTC(),
		Event:      ev,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.events) == m.capacity {
		copy(m.events, m.events[1:])
		m.events = m.events[:m.capacity-1]
	}
	m.events = append(m.events, stored)

	return stored
}

// List returns a snapshot of the stored events, oldest first.
func (m *Memory) List() []models.StoredEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.StoredEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Len returns the number of stored events.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}
