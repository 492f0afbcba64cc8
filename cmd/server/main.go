package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/config"
	"github.com/appleprotools/resale/internal/repository/mongodb"
	"github.com/appleprotools/resale/internal/repository/sheets"
	"github.com/appleprotools/resale/internal/scheduler"
	"github.com/appleprotools/resale/internal/server/handlers"
	"github.com/appleprotools/resale/internal/server/router"
	advisorsvc "github.com/appleprotools/resale/internal/service/advisor"
	commandsvc "github.com/appleprotools/resale/internal/service/commands"
	pricingsvc "github.com/appleprotools/resale/internal/service/pricing"
	reportingsvc "github.com/appleprotools/resale/internal/service/reporting"
	salessvc "github.com/appleprotools/resale/internal/service/sales"
	tradeinsvc "github.com/appleprotools/resale/internal/service/tradein"
	whatsappsvc "github.com/appleprotools/resale/internal/service/whatsapp"
	"github.com/appleprotools/resale/internal/store"
	whatsappclient "github.com/appleprotools/resale/pkg/clients/whatsapp"
	"github.com/appleprotools/resale/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var (
		seed    *catalog.Seed
		journal salessvc.Journal
	)
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		seed, err = sheets.LoadSeed(context.Background(), sheetsRepo, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to load seed from sheets", zap.Error(err))
		}
		journal = sheets.NewSalesJournal(sheetsRepo)
	} else {
		seed, err = catalog.LoadSeedFile(cfg.Seed.Path)
		if err != nil {
			baseLogger.Fatal("failed to load seed file", zap.String("path", cfg.Seed.Path), zap.Error(err))
		}
	}
	baseLogger.Info("reference data loaded",
		zap.Int("models", len(seed.Prices)),
		zap.Int("repairs", len(seed.Repairs)),
		zap.Int("lots", len(seed.Inventory)))

	inventory := store.NewInventory(seed.Lots())
	ledger := store.NewLedger()

	pricingSvc := pricingsvc.NewService(seed.Prices)
	tradeInSvc := tradeinsvc.NewService(pricingSvc, seed.Repairs)
	advisorSvc := advisorsvc.NewService(inventory, pricingSvc, nil)
	salesSvc := salessvc.NewService(inventory, ledger, journal, logger.Named(baseLogger, "svc.sales"))
	reportingSvc := reportingsvc.NewService(inventory, salesSvc, advisorSvc, logger.Named(baseLogger, "svc.reporting"))
	commandDispatcher := commandsvc.NewService(seed.Prices, pricingSvc, advisorSvc, logger.Named(baseLogger, "svc.commands"))

	var archive scheduler.ReportArchive
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, daily reports will not be archived")
	}

	var (
		notifier         scheduler.Notifier
		messagingHandler *handlers.MessagingHandler
	)
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, logger.Named(baseLogger, "svc.whatsapp"))
		messagingHandler = handlers.NewMessagingHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
		notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp token missing, chat commands and report delivery disabled")
	}

	dashboard := handlers.NewDashboardHandler(pricingSvc, tradeInSvc, advisorSvc, salesSvc, inventory, seed.Repairs, logger.Named(baseLogger, "handlers.dashboard"))
	engine := router.New(dashboard, messagingHandler, cfg.Auth, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, archive, notifier, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
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
