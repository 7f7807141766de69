package consumer

import (
	"context"
	"encoding/json"
	"go-roster/internal/events"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

var _ MessageReader = (*kafkago.Reader)(nil)

// fetchRetryDelay spaces out reads after a broker error.
var fetchRetryDelay = time.Second

// RosterHandler processes one decoded roster event.
type RosterHandler func(ctx context.Context, event events.RosterChangedEvent) error

// ConsumeRosterChanges reads roster events until ctx is cancelled. Messages
// that cannot be decoded are committed and skipped; handler failures leave
// the message uncommitted so it is fetched again.
func ConsumeRosterChanges(
	ctx context.Context,
	reader MessageReader,
	handle RosterHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.roster")
	log.Info("roster consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("roster consumer stopped")
				return
			}
			log.Error("fetch roster message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("roster consumer stopped")
				return
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		var event events.RosterChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode roster event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handle(ctx, event); err != nil {
			log.Error("handle roster event failed",
				zap.String("event_type", event.EventType),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit roster message failed", zap.Error(err))
			continue
		}

		log.Debug("roster event handled",
			zap.String("event_type", event.EventType),
			zap.Uint64("version", event.Version),
		)
	}
}
