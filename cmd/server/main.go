package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"amparo/internal/assignment"
	assignmentadapters "amparo/internal/assignment/adapters"
	assignmentmetrics "amparo/internal/assignment/metrics"
	assignmentservice "amparo/internal/assignment/service"
	assignmentstore "amparo/internal/assignment/store"
	"amparo/internal/beneficiary"
	beneficiarymetrics "amparo/internal/beneficiary/metrics"
	beneficiaryservice "amparo/internal/beneficiary/service"
	beneficiarystore "amparo/internal/beneficiary/store"
	"amparo/internal/benefit"
	benefitservice "amparo/internal/benefit/service"
	benefitstore "amparo/internal/benefit/store"
	"amparo/internal/distribution"
	distributionmetrics "amparo/internal/distribution/metrics"
	distributionservice "amparo/internal/distribution/service"
	distributionstore "amparo/internal/distribution/store"
	"amparo/internal/operator"
	"amparo/internal/operator/lockout"
	operatormetrics "amparo/internal/operator/metrics"
	"amparo/internal/operator/revocation"
	operatorservice "amparo/internal/operator/service"
	operatorstore "amparo/internal/operator/store"
	"amparo/internal/operator/token"
	"amparo/internal/platform/config"
	"amparo/internal/platform/httpserver"
	"amparo/internal/platform/logger"
	platformmetrics "amparo/internal/platform/metrics"
	"amparo/internal/platform/postgres"
	platformredis "amparo/internal/platform/redis"
	"amparo/internal/reporting"
	reportingmetrics "amparo/internal/reporting/metrics"
	reportingservice "amparo/internal/reporting/service"
	auditpublisher "amparo/pkg/platform/audit/publisher"
	auditpostgres "amparo/pkg/platform/audit/store/postgres"
	"amparo/pkg/platform/tx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "amparo:", err)
		os.Exit(1)
	}
}

// revocationList is the token deny list shared by logout and RequireAuth.
type revocationList interface {
	operatorservice.Revoker
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	time.Local = loc

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(cfg.DatabaseURL, postgres.Up); err != nil {
			return err
		}
		log.Info("migrations applied")
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	dependencies := map[string]Pinger{"postgres": db}

	rdb, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var (
		revocations revocationList
		failures    lockout.Store
	)
	if rdb != nil {
		defer rdb.Close()
		revocations = revocation.NewRedisList(rdb.Client)
		failures = lockout.NewRedisStore(rdb.Client)
		dependencies["redis"] = pingFunc(rdb.Health)
	} else {
		log.Warn("REDIS_URL not set; revoked tokens and sign-in lockouts are kept in memory")
		revocations = revocation.NewInMemoryList()
		failures = lockout.NewInMemoryStore()
	}
	throttle, err := lockout.NewGuard(failures,
		lockout.WithLogger(log),
		lockout.WithPolicy(lockout.Policy{
			Attempts:     cfg.LoginMaxAttempts,
			Window:       cfg.LoginWindow,
			LockDuration: cfg.LoginLockout,
		}),
	)
	if err != nil {
		return fmt.Errorf("login throttle: %w", err)
	}

	runner := tx.NewSQLRunner(db)
	audit := auditpublisher.NewPublisher(auditpostgres.New(db), auditpublisher.WithLogger(log))
	signer := token.NewSigner(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTTTL)

	beneficiaryStore := beneficiarystore.NewPostgres(db)
	benefitStore := benefitstore.NewPostgres(db)
	assignmentStore := assignmentstore.NewPostgres(db)
	distributionStore := distributionstore.NewPostgres(db)

	operators := operator.NewService(operatorstore.NewPostgres(db), signer, revocations,
		operatorservice.WithLogger(log),
		operatorservice.WithAuditPublisher(audit),
		operatorservice.WithMetrics(operatormetrics.New()),
		operatorservice.WithThrottle(throttle),
		operatorservice.WithTx(runner),
	)
	beneficiaries := beneficiary.NewService(beneficiaryStore, assignmentStore,
		beneficiaryservice.WithLogger(log),
		beneficiaryservice.WithAuditPublisher(audit),
		beneficiaryservice.WithMetrics(beneficiarymetrics.New()),
		beneficiaryservice.WithTx(runner),
	)
	benefits := benefit.NewService(benefitStore,
		benefitservice.WithLogger(log),
		benefitservice.WithAuditPublisher(audit),
		benefitservice.WithTx(runner),
		benefitservice.WithUsageCounters(assignmentStore, distributionStore),
	)
	assignments := assignment.NewService(assignmentStore, beneficiaryStore, benefitStore,
		assignmentservice.WithLogger(log),
		assignmentservice.WithAuditPublisher(audit),
		assignmentservice.WithMetrics(assignmentmetrics.New()),
		assignmentservice.WithTx(runner),
	)
	distributions := distribution.NewService(distributionStore,
		assignmentadapters.NewBenefitDirectory(benefitStore),
		assignments,
		assignmentStore,
		beneficiaryStore,
		distributionservice.WithLogger(log),
		distributionservice.WithAuditPublisher(audit),
		distributionservice.WithMetrics(distributionmetrics.New()),
		distributionservice.WithTx(runner),
	)
	reportMetrics := reportingmetrics.New()
	reports := reporting.NewService(db,
		reportingservice.WithLogger(log),
		reportingservice.WithMetrics(reportMetrics),
	)

	if created, err := operators.Bootstrap(ctx, cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	} else if created {
		log.Info("bootstrap admin created", "username", cfg.BootstrapUsername)
	}

	router := newRouter(routerConfig{
		logger:       log,
		metrics:      platformmetrics.New(prometheus.DefaultRegisterer),
		timeout:      cfg.RequestTimeout,
		metricsToken: cfg.MetricsToken,
		tokens:       signer,
		revocations:  revocations,
		dependencies: dependencies,
	}, handlers{
		operators:     operator.NewHandler(operators, log),
		beneficiaries: beneficiary.NewHandler(beneficiaries, log),
		benefits:      benefit.NewHandler(benefits, log),
		assignments:   assignment.NewHandler(assignments, log),
		distributions: distribution.NewHandler(distributions, log),
		reports:       reporting.NewHandler(reports, log, reportMetrics),
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting amparo", "addr", cfg.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
