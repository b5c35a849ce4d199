package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/config"
	"github.com/mamadbah2/agrilink/internal/identity"
	"github.com/mamadbah2/agrilink/internal/repository/mongodb"
	mysqlrepo "github.com/mamadbah2/agrilink/internal/repository/mysql"
	"github.com/mamadbah2/agrilink/internal/scheduler"
	"github.com/mamadbah2/agrilink/internal/server/handlers"
	"github.com/mamadbah2/agrilink/internal/server/router"
	assistantsvc "github.com/mamadbah2/agrilink/internal/service/assistant"
	registrysvc "github.com/mamadbah2/agrilink/internal/service/registry"
	reportingsvc "github.com/mamadbah2/agrilink/internal/service/reporting"
	yieldsvc "github.com/mamadbah2/agrilink/internal/service/yield"
	"github.com/mamadbah2/agrilink/pkg/clients/anthropic"
	"github.com/mamadbah2/agrilink/pkg/clients/googletoken"
	"github.com/mamadbah2/agrilink/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	db, err := mysqlrepo.Open(context.Background(), cfg.MySQL.DSN)
	if err != nil {
		baseLogger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	if err := mysqlrepo.Migrate(db); err != nil {
		baseLogger.Fatal("failed to migrate schema", zap.Error(err))
	}

	var snapshots mongodb.SnapshotStore
	if cfg.MongoDB.URI != "" {
		store, err := mongodb.NewMongoSnapshotStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init snapshot store", zap.Error(err))
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		snapshots = store
	} else {
		baseLogger.Warn("mongodb uri missing, snapshot history disabled")
	}

	yieldRepo := mysqlrepo.NewYieldRepository(db)
	farmRepo := mysqlrepo.NewFarmRepository(db)
	farmerRepo := mysqlrepo.NewFarmerRepository(db)
	catalogRepo := mysqlrepo.NewCatalogRepository(db)
	announcementRepo := mysqlrepo.NewAnnouncementRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)
	reportRepo := mysqlrepo.NewReportRepository(db)

	yieldSvc := yieldsvc.NewService(yieldRepo, announcementRepo, baseLogger.Named("svc.yield"))
	registrySvc := registrysvc.NewService(farmerRepo, farmRepo, catalogRepo, yieldSvc, baseLogger.Named("svc.registry"))
	reportingSvc := reportingsvc.NewService(reportRepo, snapshots, baseLogger.Named("svc.reporting"))

	// Initialize AI client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, assistant endpoints disabled")
	}
	assistantSvc := assistantsvc.NewService(aiClient, reportingSvc, baseLogger.Named("svc.assistant"))

	verifier, err := googletoken.NewGoogleVerifier(context.Background(), cfg.Auth.Audience)
	if err != nil {
		baseLogger.Fatal("failed to init token verifier", zap.Error(err))
	}
	resolver := identity.NewService(verifier, userRepo, baseLogger.Named("identity"))

	engine := router.New(router.Handlers{
		Yields:        handlers.NewYieldHandler(yieldSvc, baseLogger.Named("handlers.yield")),
		Registry:      handlers.NewRegistryHandler(registrySvc, baseLogger.Named("handlers.registry")),
		Catalog:       handlers.NewCatalogHandler(registrySvc, baseLogger.Named("handlers.catalog")),
		Reports:       handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		Assistant:     handlers.NewAssistantHandler(assistantSvc, baseLogger.Named("handlers.assistant")),
		Notifications: handlers.NewNotificationHandler(announcementRepo, baseLogger.Named("handlers.notifications")),
	}, resolver, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Snapshot, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
