package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// DefaultOutboxCapacity bounds the number of unsent events kept in memory.
const DefaultOutboxCapacity = 1024

var ErrOutboxFull = errors.New("outbox is full")

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	// Version is the roster version that produced the event.
	Version       uint64
	Payload       []byte
	Status        string
	RetryCount    int
	LastError     string
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// Notifier is implemented by outboxes that signal when events are queued.
// The channel is level-triggered: one pending signal covers any number of
// Create calls.
type Notifier interface {
	Ready() <-chan struct{}
}

// memoryOutbox keeps unsent events in insertion order. Sent events are
// dropped; nothing survives a restart.
type memoryOutbox struct {
	mu       sync.Mutex
	events   []OutboxEvent
	capacity int
	now      func() time.Time
	ready    chan struct{}
}

func NewMemoryOutbox(capacity int) OutboxRepository {
	if capacity <= 0 {
		capacity = DefaultOutboxCapacity
	}
	return &memoryOutbox{capacity: capacity, now: time.Now, ready: make(chan struct{}, 1)}
}

func (r *memoryOutbox) Ready() <-chan struct{} {
	return r.ready
}

func (r *memoryOutbox) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) >= r.capacity {
		return ErrOutboxFull
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}
	r.events = append(r.events, event)

	select {
	case r.ready <- struct{}{}:
	default:
	}
	return nil
}

// ListPending returns up to limit events that are due, oldest first. An
// event waiting out its back-off holds back every later event of the same
// aggregate, so consumers never see an aggregate's changes out of order.
func (r *memoryOutbox) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	held := make(map[string]bool)
	out := make([]OutboxEvent, 0, min(limit, len(r.events)))
	for _, e := range r.events {
		if len(out) >= limit {
			break
		}
		if held[e.AggregateID] {
			continue
		}
		if e.Status == OutboxStatusFailed && e.NextRetryAt.After(now) {
			held[e.AggregateID] = true
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryOutbox) MarkSent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

// MarkFailed schedules a retry with a linear back-off of 15s per attempt,
// capped at ten attempts' worth.
func (r *memoryOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		e := &r.events[i]
		if e.ID != id {
			continue
		}
		e.Status = OutboxStatusFailed
		e.RetryCount++
		if len(reason) > 500 {
			reason = reason[:500]
		}
		e.LastError = reason
		e.NextRetryAt = r.now().Add(time.Duration(min(e.RetryCount, 10)) * 15 * time.Second)
		return nil
	}
	return fmt.Errorf("outbox event %s not found", id)
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
