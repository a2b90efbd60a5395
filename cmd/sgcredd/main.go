package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sigecred/sgcred/internal/application/usecase"
	"github.com/sigecred/sgcred/internal/domain/service"
	"github.com/sigecred/sgcred/internal/infrastructure/config"
	"github.com/sigecred/sgcred/internal/infrastructure/messaging"
	pgRepo "github.com/sigecred/sgcred/internal/infrastructure/persistence/postgres"
	"github.com/sigecred/sgcred/internal/presentation/rest"
	pkgkafka "github.com/sigecred/sgcred/pkg/kafka"
	"github.com/sigecred/sgcred/pkg/observability"
	pkgpostgres "github.com/sigecred/sgcred/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting sgcred", "http_port", cfg.HTTPPort)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns),
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://"+cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	clientRepo := pgRepo.NewClientRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	installmentRepo := pgRepo.NewInstallmentRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	}, logger)
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, logger)

	projector := service.NewScheduleProjector()

	// Wire use cases.
	registerClientUC := usecase.NewRegisterClientUseCase(clientRepo, publisher)
	getClientUC := usecase.NewGetClientUseCase(clientRepo)
	updateClientUC := usecase.NewUpdateClientUseCase(clientRepo)
	deleteClientUC := usecase.NewDeleteClientUseCase(clientRepo, loanRepo, publisher)
	createLoanUC := usecase.NewCreateLoanUseCase(clientRepo, loanRepo, projector, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(clientRepo, loanRepo, installmentRepo, projector)
	listLoansUC := usecase.NewListLoansUseCase(clientRepo, loanRepo, installmentRepo, projector)
	updateLoanStatusUC := usecase.NewUpdateLoanStatusUseCase(loanRepo, publisher)
	deleteLoanUC := usecase.NewDeleteLoanUseCase(loanRepo, installmentRepo, projector, publisher)
	paymentPlanUC := usecase.NewGetPaymentPlanUseCase(clientRepo, loanRepo, installmentRepo, projector)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(installmentRepo, projector, publisher)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	rest.NewClientHandler(registerClientUC, getClientUC, updateClientUC, deleteClientUC, logger).RegisterRoutes(mux)
	rest.NewLoanHandler(createLoanUC, getLoanUC, listLoansUC, updateLoanStatusUC, deleteLoanUC, paymentPlanUC, recordPaymentUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.RequestLogging(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("sgcred stopped")
}
