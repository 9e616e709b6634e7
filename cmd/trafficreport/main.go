// Command trafficreport serves traffic reports over HTTP and records vehicle
// detections posted by sensors or read from Kafka.
//
// Endpoints:
//
//	GET  /health
//	GET  /reports?type=daily|weekly|monthly|custom&start=YYYY-MM-DD&end=YYYY-MM-DD
//	POST /reports     (ReportConfigSpec JSON body)
//	POST /detections  ({"direction":"North","type":"Car","height":1.5,"distance":3})
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrisconley/trafficreport/internal/api"
	"github.com/chrisconley/trafficreport/internal/config"
	"github.com/chrisconley/trafficreport/internal/infra"
	"github.com/chrisconley/trafficreport/internal/ingest"
	"github.com/chrisconley/trafficreport/internal/logging"
	"github.com/chrisconley/trafficreport/internal/metrics"
	"github.com/chrisconley/trafficreport/internal/reporting"
	"github.com/chrisconley/trafficreport/internal/source"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("traffic report service stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	bus := infra.NewBus()
	metrics.Subscribe(bus)
	subscribeLogging(bus, logger)

	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	reports := reporting.NewService(store, bus, reporting.Options{
		Timezone:     cfg.Report.Timezone,
		FetchTimeout: cfg.Report.FetchTimeout,
	}, logger)
	ingestor := ingest.NewIngestor(store, bus, logger)

	router := api.NewRouter(api.NewHandlers(reports, ingestor, location, logger))
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled {
		reader := ingest.NewKafkaReader(ingest.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		consumer := ingest.NewKafkaConsumer(reader, ingestor, cfg.Kafka.RetryDelay, logger)
		g.Go(func() error {
			logger.Info("consuming detections from kafka",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.String("topic", cfg.Kafka.Topic),
			)
			if err := consumer.Run(gctx); err != nil {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("traffic report API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg *config.Config, logger *zap.Logger) (source.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := source.OpenPostgres(cfg.Store.URL, source.PostgresOptions{
			MaxOpenConns:    cfg.Store.MaxOpenConns,
			MaxIdleConns:    cfg.Store.MaxIdleConns,
			ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
			AutoMigrate:     cfg.Store.AutoMigrate,
		}, logger)
		if err != nil {
			return nil, err
		}
		return source.NewPostgresStore(db, logger), nil
	default:
		logger.Warn("using in-memory detection store; data is lost on restart")
		return source.NewMemoryStore(), nil
	}
}

func subscribeLogging(bus *infra.Bus, logger *zap.Logger) {
	bus.Subscribe(infra.DetectionReceived, func(e infra.Event) {
		if ev, ok := e.(infra.DetectionReceivedEvent); ok {
			logger.Debug("detection received", zap.String("origin", ev.Source), zap.Int("bytes", len(ev.Payload)))
		}
	})
	bus.Subscribe(infra.DetectionRejected, func(e infra.Event) {
		if ev, ok := e.(infra.DetectionRejectedEvent); ok {
			logger.Warn("detection rejected", zap.String("origin", ev.Source), zap.String("reason", ev.Reason))
		}
	})
	bus.Subscribe(infra.ReportGenerated, func(e infra.Event) {
		if ev, ok := e.(infra.ReportGeneratedEvent); ok {
			logger.Debug("report published",
				zap.String("kind", ev.Kind),
				zap.Bool("has_data", ev.Report.HasData),
				zap.String("leader", ev.Report.Comparison.Leader),
			)
		}
	})
}
