package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	cardsapp "github.com/gabbai/backend/internal/application/cards"
	eventapp "github.com/gabbai/backend/internal/application/event"
	identityapp "github.com/gabbai/backend/internal/application/identity"
	registryapp "github.com/gabbai/backend/internal/application/registry"
	reportapp "github.com/gabbai/backend/internal/application/report"
	scanapp "github.com/gabbai/backend/internal/application/scanning"
	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/identity"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/gabbai/backend/internal/infrastructure/auth"
	"github.com/gabbai/backend/internal/infrastructure/barcode"
	"github.com/gabbai/backend/internal/infrastructure/config"
	"github.com/gabbai/backend/internal/infrastructure/hebcal"
	"github.com/gabbai/backend/internal/infrastructure/logger"
	"github.com/gabbai/backend/internal/infrastructure/persistence"
	"github.com/gabbai/backend/internal/infrastructure/printing"
	"github.com/gabbai/backend/internal/infrastructure/session"
	"github.com/gabbai/backend/internal/interfaces/http/handler"
	"github.com/gabbai/backend/internal/interfaces/http/middleware"
	"github.com/gabbai/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Gabbai Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// SQLite installs have no migration CLI; keep the schema current here
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(
			&identity.User{},
			&registry.Buyer{},
			&registry.Item{},
			&event.Event{},
			&event.Purchase{},
		); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)

	// Scan session state store (Redis with in-memory fallback)
	stateStore := session.NewStateStoreFactory(cfg.Redis, log).CreateStore()
	defer func() {
		if err := stateStore.Close(); err != nil {
			log.Error("Error closing state store", zap.Error(err))
		}
	}()

	// PDF rendering via headless Chrome
	pdfRenderer := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.RenderTimeout,
		ExecPath:       cfg.Printing.ChromePath,
		NoSandbox:      cfg.App.Env == "production",
		Logger:         log,
	})
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	barcodeGenerator := barcode.NewGenerator()
	calendar := hebcal.NewCalendar()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	buyerService := registryapp.NewBuyerService(buyerRepo, purchaseRepo)
	itemService := registryapp.NewItemService(itemRepo, purchaseRepo)
	eventService := eventapp.NewEventService(eventRepo, purchaseRepo, calendar, log)
	purchaseService := eventapp.NewPurchaseService(purchaseRepo, eventRepo, buyerRepo, itemRepo, log)
	reportService := reportapp.NewReportService(eventRepo, purchaseRepo, pdfRenderer, log)
	cardService := cardsapp.NewCardService(buyerRepo, itemRepo, barcodeGenerator, pdfRenderer, log)

	scanEngine := scanning.NewEngine(
		scanapp.NewDirectory(buyerRepo, itemRepo),
		scanapp.NewCommitter(purchaseRepo, itemRepo, log),
		scanapp.NewConflictChecker(purchaseRepo, buyerRepo),
	)
	scanService := scanapp.NewScanService(scanEngine, stateStore, eventRepo, purchaseRepo, cfg.Session.TTL, log)

	// Bootstrap admin account on an empty user table
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdminUser(bootstrapCtx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		cancelBootstrap()
		log.Fatal("Failed to ensure admin account", zap.Error(err))
	}
	cancelBootstrap()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID(log))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))
	engine.Use(middleware.CORSFromConfig(cfg.HTTP))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewUserHandler(authService))
	r.Register(handler.NewBuyerHandler(buyerService))
	r.Register(handler.NewItemHandler(itemService))
	r.Register(handler.NewEventHandler(eventService, purchaseService))
	r.Register(handler.NewScanHandler(scanService))
	r.Register(handler.NewReportHandler(reportService))
	r.Register(handler.NewCardHandler(cardService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
