package producer

import (
	"context"
	"time"

	"go-roster/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// DrainTimeout bounds the final flush after cancellation. Zero skips it.
	DrainTimeout time.Duration
}

// Worker moves roster events from the in-memory outbox to Kafka. Events of
// one aggregate go out in Version order: a failed event blocks the rest of
// its aggregate until the outbox schedules it again.
type Worker struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    WorkerConfig
	logger *zap.Logger
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, cfg WorkerConfig, logger ...*zap.Logger) *Worker {
	l := zap.L().Named("kafka.producer.worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.worker")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Worker{repo: repo, writer: writer, cfg: cfg, logger: l}
}

// FlushResult counts what one pass did with the due events.
type FlushResult struct {
	Sent   int
	Failed int
	Held   int
}

// Run flushes on every poll tick and as soon as the outbox reports new
// events. Queued events do not outlive the process, so cancellation triggers
// one last bounded flush before Run returns.
func (w *Worker) Run(ctx context.Context) {
	var ready <-chan struct{}
	if n, ok := w.repo.(kafka.Notifier); ok {
		ready = n.Ready()
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started",
		zap.Duration("poll_interval", w.cfg.PollInterval),
		zap.Bool("notified", ready != nil),
	)

	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
		case <-ready:
		}
		w.Flush(ctx)
	}
}

func (w *Worker) drain() {
	if w.cfg.DrainTimeout <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.DrainTimeout)
	defer cancel()

	res := w.Flush(ctx)
	w.logger.Info("outbox drained on shutdown",
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
		zap.Int("held", res.Held),
	)
}

// Flush publishes one batch of due events.
func (w *Worker) Flush(ctx context.Context) FlushResult {
	var res FlushResult

	events, err := w.repo.ListPending(ctx, w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("list pending outbox events failed", zap.Error(err))
		return res
	}
	if len(events) == 0 {
		return res
	}

	blocked := make(map[string]bool)
	for _, event := range events {
		if blocked[event.AggregateID] {
			res.Held++
			continue
		}

		if err := publishEvent(ctx, w.writer, event); err != nil {
			blocked[event.AggregateID] = true
			res.Failed++
			w.logger.Warn("publish roster event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("aggregate_id", event.AggregateID),
				zap.Uint64("version", event.Version),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				w.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		res.Sent++
	}

	w.logger.Debug("outbox batch processed",
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
		zap.Int("held", res.Held),
	)
	return res
}
