package app

import (
	"context"
	"fmt"
	"strings"

	"go-roster/internal/bootstrap"
	"go-roster/internal/config"
	"go-roster/internal/events"
	"go-roster/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer records every roster change published by the API in the audit
// log until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if !cfg.KafkaEnabled() {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	audit := bootstrap.NewStdoutAuditLogger(logger)
	consumer.ConsumeRosterChanges(ctx, reader, auditRosterEvent(audit), logger)
	logger.Named("app.consumer").Info("consumer shut down")
	return nil
}

func auditRosterEvent(audit bootstrap.AuditLogger) consumer.RosterHandler {
	return func(ctx context.Context, event events.RosterChangedEvent) error {
		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "ROSTER_" + strings.ToUpper(event.EventType),
			Message: "Roster changed",
			Meta: map[string]any{
				"employee_id": event.EmployeeID,
				"version":     event.Version,
				"total":       event.Total,
				"occurred_at": event.OccurredAt,
			},
		})
		return nil
	}
}
