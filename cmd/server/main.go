package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernet/fernet-go"
	"go.uber.org/zap"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/avm"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/config"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/database"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/logger"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/scheduler"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/skiptrace"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Open database connection and bring the schema up to date
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}
	zlog.Info("connected to database", zap.String("path", cfg.Database.Path))

	// Payload encryption keys; first key seals, all keys open
	keys, err := fernet.DecodeKeys(cfg.SkipTrace.EncryptionKeys...)
	if err != nil {
		zlog.Fatal("failed to decode encryption keys", zap.Error(err))
	}

	issuer := auth.TokenIssuer{
		Secret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL: cfg.Auth.TokenTTL,
	}

	// Create repositories
	propertyRepo := repository.NewPropertyRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	recordRepo := repository.NewMonthlyRecordRepository(db)
	mortgageRepo := repository.NewMortgageRepository(db)
	contactRepo := repository.NewContactRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	turnoverRepo := repository.NewTurnoverRepository(db)
	skipTraceRepo := repository.NewSkipTraceRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// Provider clients
	avmClient := avm.NewEstimateClient(cfg.AVM.BaseURL, cfg.AVM.APIKey)
	lookupClient := skiptrace.NewLookupClient(cfg.SkipTrace.BaseURL, cfg.SkipTrace.APIKey)

	// Create services. Performance comes first: portfolio and valuation
	// writes invalidate its cache.
	systemService := service.NewSystemService(db)
	calculator := service.NewPerformanceCalculator(model.DefaultAssumptions())
	performanceService := service.NewPerformanceService(
		portfolioRepo,
		recordRepo,
		mortgageRepo,
		valuationRepo,
		calculator,
	)
	propertyService := service.NewPropertyService(propertyRepo)
	valuationService := service.NewValuationService(
		valuationRepo,
		propertyRepo,
		avmClient,
		performanceService,
		zlog,
	)
	portfolioService := service.NewPortfolioService(
		db,
		portfolioRepo,
		propertyRepo,
		recordRepo,
		mortgageRepo,
		performanceService,
	)
	contactService := service.NewContactService(contactRepo)
	vendorService := service.NewVendorService(vendorRepo)
	workOrderService := service.NewWorkOrderService(workOrderRepo, propertyRepo, vendorRepo)
	turnoverService := service.NewTurnoverService(turnoverRepo, propertyRepo)
	skipTraceService := service.NewSkipTraceService(skipTraceRepo, lookupClient, keys, zlog)
	depositService := service.NewDepositService(depositRepo, propertyRepo)
	teamService := service.NewTeamService(teamRepo, issuer, zlog)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Team:        teamService,
		Property:    propertyService,
		Valuation:   valuationService,
		Portfolio:   portfolioService,
		Performance: performanceService,
		Contact:     contactService,
		Vendor:      vendorService,
		WorkOrder:   workOrderService,
		Turnover:    turnoverService,
		SkipTrace:   skipTraceService,
		Deposit:     depositService,
	}, issuer, zlog, cfg)

	// Nightly estimate refresh
	if cfg.Scheduler.RefreshEnabled {
		sched := scheduler.New(zlog, context.Background())
		_, err := sched.Add(cfg.Scheduler.RefreshSchedule, "valuation-refresh", valuationService.RefreshAllEstimates)
		if err != nil {
			zlog.Fatal("failed to schedule valuation refresh", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
