// outbox-relay forwards audit events from the audit_outbox table to Kafka.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"amparo/internal/platform/config"
	"amparo/internal/platform/httpserver"
	"amparo/internal/platform/kafka"
	"amparo/internal/platform/logger"
	"amparo/internal/platform/postgres"
	auditpostgres "amparo/pkg/platform/audit/store/postgres"
	"amparo/pkg/platform/audit/relay"
	"amparo/pkg/platform/middleware/scrape"
)

const (
	topicPartitions  = 3
	topicReplication = 1
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "outbox-relay:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat).With("component", "outbox-relay")

	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return errors.New("KAFKA_BROKERS is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	producer, err := kafka.NewProducer(brokers, cfg.AuditTopic)
	if err != nil {
		return err
	}
	defer producer.Close()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := producer.Ping(startCtx); err != nil {
		return fmt.Errorf("kafka ping: %w", err)
	}
	if err := producer.EnsureTopic(startCtx, topicPartitions, topicReplication); err != nil {
		return err
	}

	r := relay.New(auditpostgres.New(db), producer,
		relay.WithBatchSize(cfg.RelayBatch),
		relay.WithInterval(cfg.RelayPoll),
		relay.WithLogger(log),
		relay.WithMetrics(relay.NewMetrics(prometheus.DefaultRegisterer)),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", scrape.RequireToken(cfg.MetricsToken, log)(promhttp.Handler()))
	srv := httpserver.New(cfg.RelayAddr, mux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("relaying audit outbox", "topic", cfg.AuditTopic, "brokers", brokers)
		if err := r.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err = g.Wait()
	log.Info("outbox relay stopped")
	return err
}
