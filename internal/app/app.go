// Package app wires the roster modules into runnable processes.
package app

import (
	"context"
	"fmt"
	"time"

	"go-roster/internal/bootstrap"
	"go-roster/internal/config"
	"go-roster/internal/employee"
	"go-roster/internal/locale"
	"go-roster/internal/messaging/kafka"
	"go-roster/internal/messaging/kafka/producer"
	"go-roster/internal/metrics"
	"go-roster/internal/middleware"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	kafkaConnectRetries = 5
	kafkaConnectDelay   = 2 * time.Second
)

// App is one roster session: a single store served over HTTP.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	Store   *employee.Store
	Outbox  kafka.OutboxRepository
	Metrics *metrics.Metrics

	audit  bootstrap.AuditLogger
	logger *zap.Logger
}

func BuildApp(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}
	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	translator, err := locale.NewTranslator(cfg.DefaultLocale, cfg.SupportedLocales, logger)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	switcher := locale.NewSwitcher(translator, logger)

	store := employee.NewStore(
		employee.WithPageSize(cfg.DefaultPageSize),
		employee.WithStoreLogger(logger),
	)

	m := metrics.New()
	store.Subscribe(m.Observe)

	outbox := kafka.NewMemoryOutbox(cfg.OutboxCapacity)
	if cfg.KafkaEnabled() {
		employee.NewOutboxForwarder(outbox, cfg.KafkaTopic, logger).Attach(store)
	}

	if cfg.SeedEnabled {
		employee.Seed(store, cfg.SeedCount, nil)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		m.Middleware(),
		locale.Middleware(translator, switcher),
		middleware.ContextLogger(logger),
	)

	registerModules(router, modules{
		config:     cfg,
		store:      store,
		translator: translator,
		switcher:   switcher,
		metrics:    m,
		logger:     logger,
	})

	return &App{
		Config:  cfg,
		Router:  router,
		Store:   store,
		Outbox:  outbox,
		Metrics: m,
		audit:   bootstrap.NewStdoutAuditLogger(logger),
		logger:  logger,
	}, nil
}

// Run serves HTTP and, when a broker is configured, drains the outbox into
// Kafka. It returns when ctx is cancelled or either part fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bootstrap.RunHTTPServer(ctx, a.Router, bootstrap.ServerConfig{
			Port:         a.Config.Port,
			ReadTimeout:  a.Config.ReadTimeout,
			WriteTimeout: a.Config.WriteTimeout,
			IdleTimeout:  a.Config.IdleTimeout,
		}, a.audit, a.logger)
	})

	if a.Config.KafkaEnabled() {
		g.Go(func() error {
			writer, err := connection.ConnectKafkaWithRetry(ctx, a.Config.KafkaBroker, kafkaConnectRetries, kafkaConnectDelay)
			if err != nil {
				return err
			}
			defer writer.Close()

			producer.NewWorker(a.Outbox, writer, producer.WorkerConfig{
				PollInterval: a.Config.OutboxPollInterval,
				BatchSize:    a.Config.OutboxBatchSize,
				DrainTimeout: a.Config.OutboxDrainTimeout,
			}, a.logger).Run(ctx)
			return nil
		})
	} else {
		a.logger.Info("KAFKA_BROKER not set, roster events are not published")
	}

	return g.Wait()
}
