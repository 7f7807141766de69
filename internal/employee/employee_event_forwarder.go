package employee

import (
	"context"
	"encoding/json"
	"time"

	"go-roster/internal/events"
	"go-roster/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var rosterEventTypes = map[Action]string{
	ActionAdd:    events.EventEmployeeAdded,
	ActionUpdate: events.EventEmployeeUpdated,
	ActionRemove: events.EventEmployeeRemoved,
	ActionSetAll: events.EventEmployeesReplaced,
}

// OutboxForwarder turns committed roster changes into outbox events. UI
// state changes (filters, form, loading) are not forwarded.
type OutboxForwarder struct {
	outbox kafka.OutboxRepository
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

func NewOutboxForwarder(outbox kafka.OutboxRepository, topic string, logger ...*zap.Logger) *OutboxForwarder {
	l := zap.L().Named("employee.forwarder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.forwarder")
	}
	if topic == "" {
		topic = events.RosterChangedTopic
	}
	return &OutboxForwarder{outbox: outbox, topic: topic, now: time.Now, logger: l}
}

// Attach subscribes the forwarder to repo and returns the unsubscribe func.
func (f *OutboxForwarder) Attach(repo Repository) (detach func()) {
	return repo.Subscribe(f.Handle)
}

// Handle is the store listener. Outbox failures are logged and swallowed so a
// full outbox never blocks the roster.
func (f *OutboxForwarder) Handle(ch Change) {
	eventType, ok := rosterEventTypes[ch.Action]
	if !ok || !ch.Applied {
		return
	}

	event := events.RosterChangedEvent{
		EventType:  eventType,
		EmployeeID: ch.EmployeeID,
		Version:    ch.State.Version,
		Total:      len(ch.State.Employees),
		OccurredAt: f.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		f.logger.Error("marshal roster event failed", zap.Error(err))
		return
	}

	aggregateID := ch.EmployeeID
	if aggregateID == "" {
		aggregateID = "roster"
	}
	if err := f.outbox.Create(context.Background(), kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         f.topic,
		Version:       ch.State.Version,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		f.logger.Error("enqueue roster event failed",
			zap.String("event_type", eventType),
			zap.String("employee_id", ch.EmployeeID),
			zap.Uint64("version", ch.State.Version),
			zap.Error(err),
		)
		return
	}

	f.logger.Debug("roster event queued",
		zap.String("event_type", eventType),
		zap.String("employee_id", ch.EmployeeID),
	)
}
