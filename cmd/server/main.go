package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"docmap/internal/assist"
	"docmap/internal/assist/gateway"
	"docmap/internal/assist/gemini"
	"docmap/internal/catalog"
	"docmap/internal/config"
	"docmap/internal/email/noop"
	sesemail "docmap/internal/email/ses"
	"docmap/internal/handler"
	"docmap/internal/logging"
	"docmap/internal/mapping"
	"docmap/internal/port"
	"docmap/internal/repository/postgres"
	"docmap/internal/review"
	"docmap/internal/router"
	"docmap/internal/ruleset"
	"docmap/internal/service"
	s3storage "docmap/internal/storage/s3"
	"docmap/internal/trigger"
)

// @title DocMap API
// @version 1.0
// @description Document-to-business-model mapping and review service.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Rule sets, seeded from the catalog
	store := ruleset.NewStore(cat, logger)
	for i := range cat.RuleSets {
		if err := store.Add(&cat.RuleSets[i]); err != nil {
			return fmt.Errorf("failed to seed rule set %s: %w", cat.RuleSets[i].ID, err)
		}
	}
	index := ruleset.NewIndex(cat.Templates, store)

	// Template search providers
	assist.RegisterSearcher("gemini", gemini.NewSearcher)
	assist.RegisterSearcher("gateway", gateway.NewSearcher)
	searcher, err := assist.NewSearcher(ctx, &cfg.Assist, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize template search: %w", err)
	}

	// Optional review audit database
	var (
		auditRepo port.ReviewAuditRepository
		pinger    handler.Pinger
	)
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		auditRepo = postgres.NewReviewAuditRepo(db)
		pinger = db
	}

	// Optional document storage
	var storage port.DocumentStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewDocumentStore(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	sender, err := newEmailSender(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Trigger dispatch
	worker := trigger.NewWorker(
		trigger.NewLogDispatcher(cfg.Trigger.TrackingBaseURL, logger),
		trigger.WorkerConfig{
			Concurrency: cfg.Trigger.Concurrency,
			Timeout:     time.Duration(cfg.Trigger.TimeoutSecs) * time.Second,
		},
		logger,
	)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var workerWG sync.WaitGroup
	workerWG.Add(1)
	go func() {
		defer workerWG.Done()
		worker.Start(workerCtx)
	}()

	// Services
	workflowSvc := service.NewWorkflowService(service.WorkflowDeps{
		Sessions:   service.NewSessionRegistry(),
		Store:      store,
		Index:      index,
		Executor:   mapping.NewExecutor(cat, cfg.Mapping.MaxRows, logger),
		Review:     review.NewMachine(cfg.Review.Strict),
		Identifier: assist.NewNameMatcher(cat.Partners),
		Suggester:  assist.Suggester{},
		Searcher:   searcher,
		Storage:    storage,
		S3:         &cfg.S3,
		Email:      sender,
		Triggers:   worker,
		Audit:      auditRepo,
		Logger:     logger,
	})
	catalogSvc := service.NewCatalogService(cat, store, index, logger)

	r := router.Setup(router.Handlers{
		Session: handler.NewSessionHandler(workflowSvc),
		Catalog: handler.NewCatalogHandler(catalogSvc, workflowSvc),
		Health:  handler.NewHealthHandler(pinger),
	}, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			stopWorker()
			workerWG.Wait()
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	stopWorker()
	workerWG.Wait()
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("env", cfg.Server.Environment)), nil
}

func newEmailSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		sender, err := sesemail.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewNoopSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}
}
