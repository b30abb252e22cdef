package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/pkg/cache"
	"github.com/ghuser/tableside/pkg/config"
	"github.com/ghuser/tableside/pkg/database"
	"github.com/ghuser/tableside/pkg/events"
	"github.com/ghuser/tableside/pkg/logger"
	"github.com/ghuser/tableside/pkg/telemetry"
	"github.com/ghuser/tableside/pkg/workflows"
	orderEvents "github.com/ghuser/tableside/services/order/domain/events"
	tablesvcs "github.com/ghuser/tableside/services/table/application/services"
	tableWorkflows "github.com/ghuser/tableside/services/table/application/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// The cleaning worker serves the table-cleaning task queue. Without
	// Temporal the process still runs the event subscribers; cleaning windows
	// then expire lazily on the API side.
	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Warn("temporal unavailable, cleaning worker not started", "error", err)
	} else {
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		tableServices := tablesvcs.New(appConfig, cfg.CleaningDuration, nil)
		w := tableWorkflows.NewWorker(temporalClient, tableServices.Registry)
		if err := w.Start(); err != nil {
			log.Error("failed to start cleaning worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("cleaning worker started", "task_queue", tableWorkflows.TaskQueue)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, orderEvents.TopicOrderPaid, handleOrderPaid(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", orderEvents.TopicOrderPaid,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{orderEvents.TopicOrderPaid})
	return nil
}

// handleOrderPaid returns a handler for order.paid events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Evicts the active-order cache entry for the table so a stale order can never
// be served after the table turns over. The API drops the entry itself on the
// happy path; this covers crashes between commit and eviction.
func handleOrderPaid(a *app.Application) func(context.Context, *message.Message) error {
	orderCache := cache.NewActiveOrderCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderEvents.OrderPaidEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := orderCache.Delete(ctx, evt.TableID); err != nil {
			// Eviction is best-effort; the cache entry has a TTL regardless.
			a.Logger.WarnContext(ctx, "cache evict failed for order.paid",
				"order_id", evt.OrderID, "table_id", evt.TableID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "order settled",
				"order_id", evt.OrderID,
				"table_id", evt.TableID,
				"total", evt.Total,
				"payment_method", evt.PaymentMethod,
			)
		}

		return nil
	}
}
