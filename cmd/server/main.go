package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/catalog"
	disputeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/dispute"
	financeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/finance"
	partnerapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/partner"
	reportapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/report"
	tradeapp "github.com/talalabbas84/spledid-beauty-sub000/internal/application/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/auth"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/cache"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/event"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/logger"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/messaging"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/migration"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/storage"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/telemetry"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/handler"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/router"
	"github.com/talalabbas84/spledid-beauty-sub000/migrations"
	"go.uber.org/zap"
)

//	@title			Marketplace API
//	@version		1.0
//	@description	Multi-vendor beauty marketplace: vendor onboarding, listing approval, order fulfillment, payouts and disputes

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting marketplace",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if cfg.JWT.Secret == config.DefaultJWTSecret {
		log.Warn("Using the default JWT secret; set MKT_JWT_SECRET")
	}

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(telemetry.MetricsConfig{
		Enabled:     cfg.Telemetry.MetricsEnabled,
		ServiceName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database
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

	if cfg.Database.Driver == "postgres" && cfg.Database.AutoMigrate {
		if err := migrateUp(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	if cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      !cfg.IsProduction(),
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        dbSystem(cfg.Database.Driver),
		}, log)
		if err := plugin.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DBMetricsConfig{
		Enabled:            meterProvider.IsEnabled(),
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer func() { _ = dbMetrics.Stop() }()
	}

	// Repositories
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	listingRepo := persistence.NewGormProductListingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	vendorOrderRepo := persistence.NewGormVendorOrderRepository(db.DB)
	disputeRepo := persistence.NewGormDisputeRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Commission rates
	rates, err := finance.NewStaticRateProvider(cfg.Commission.DefaultRate, cfg.Commission.VendorRates)
	if err != nil {
		log.Fatal("Invalid commission configuration", zap.Error(err))
	}

	// Evidence storage
	evidenceStorage, err := storage.NewEvidenceStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize evidence storage", zap.Error(err))
	}

	// Application services
	vendorService := partnerapp.NewVendorService(vendorRepo, log)
	listingService := catalogapp.NewListingService(listingRepo, vendorRepo, cfg.Commission.Currency, log)
	orderService := tradeapp.NewOrderService(orderRepo, vendorOrderRepo,
		catalogapp.NewOrderableResolver(listingRepo, vendorRepo), rates, txScope, cfg.Commission.Currency, log)
	fulfillmentService := tradeapp.NewFulfillmentService(vendorOrderRepo, txScope, log)
	payoutService := financeapp.NewPayoutService(vendorOrderRepo, disputeRepo, log)
	disputeService := disputeapp.NewDisputeService(disputeRepo, vendorOrderRepo, evidenceStorage, disputeapp.ServiceConfig{
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
		DownloadURLExpiry: cfg.Storage.DownloadExpiration,
	}, log)
	dashboardService := reportapp.NewDashboardService(vendorRepo, listingRepo, vendorOrderRepo, disputeRepo)

	fulfillmentService.SetPayoutSignaler(payoutService)
	disputeService.SetPayoutSignaler(payoutService)

	// Authentication
	blacklist, closeBlacklist := newTokenBlacklist(ctx, cfg, log)
	defer closeBlacklist()
	jwtService := auth.NewJWTService(cfg.JWT)
	authenticator := auth.NewAuthenticator(jwtService, blacklist)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	for _, publisherAware := range []interface {
		SetEventPublisher(shared.EventPublisher)
	}{vendorService, listingService, orderService, fulfillmentService, payoutService, disputeService} {
		publisherAware.SetEventPublisher(eventBus)
	}

	eventBus.Subscribe(auth.NewSuspensionRevoker(blacklist, cfg.JWT.AccessTokenExpiration, log))

	marketplaceMetrics, err := telemetry.NewMarketplaceMetrics(meterProvider.Meter("marketplace"), log)
	if err != nil {
		log.Fatal("Failed to initialize marketplace metrics", zap.Error(err))
	}
	eventBus.Subscribe(marketplaceMetrics)

	if cfg.Kafka.Enabled {
		idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, cfg.IsProduction(), log)
		if err != nil {
			log.Fatal("Failed to initialize idempotency store", zap.Error(err))
		}
		defer func() { _ = idempotencyStore.Close() }()

		serializer := event.NewEventSerializer()
		event.RegisterMarketplaceEvents(serializer)

		forwarder := messaging.NewPayoutSignalForwarder(messaging.NewKafkaWriter(cfg.Kafka), cfg.Kafka.PayoutTopic, serializer, log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing payout forwarder", zap.Error(err))
			}
		}()
		eventBus.Subscribe(event.NewIdempotentHandler(forwarder, idempotencyStore, log,
			event.WithIdempotencyConfig(shared.IdempotencyConfig{
				TTL:     cfg.Event.IdempotencyTTL,
				Enabled: cfg.Event.IdempotencyEnabled,
			}),
		))
		log.Info("Payout signals forwarded to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.PayoutTopic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	system := handler.NewSystemHandler(telemetry.ServiceVersion).
		AddCheck("database", func(context.Context) error { return db.Ping() })

	engine := router.NewEngine(router.EngineConfig{
		HTTP:          cfg.HTTP,
		ServiceName:   cfg.Telemetry.ServiceName,
		Logger:        log,
		Authenticator: authenticator,
		MeterProvider: meterProvider,
		TracingOn:     tracerProvider.IsEnabled(),
		Health:        system.Health,
	},
		handler.NewAuthHandler(authenticator),
		handler.NewVendorHandler(vendorService),
		handler.NewProductHandler(listingService),
		handler.NewOrderHandler(orderService, fulfillmentService),
		handler.NewPayoutHandler(payoutService),
		handler.NewDisputeHandler(disputeService),
		handler.NewDashboardHandler(dashboardService),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func migrateUp(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared pool; it is released with db.
	return m.Up()
}

// newTokenBlacklist uses Redis when enabled so revocations survive restarts
// and are shared between instances
func newTokenBlacklist(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.TokenBlacklist, func()) {
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err == nil {
			log.Info("Token revocations stored in redis", zap.String("addr", cfg.Redis.Addr()))
			return auth.NewRedisTokenBlacklist(client, auth.DefaultBlacklistPrefix), func() { _ = client.Close() }
		}
		if cfg.IsProduction() {
			log.Fatal("Redis is required for token revocation in production", zap.Error(err))
		}
		log.Warn("Redis unavailable, token revocations kept in memory", zap.Error(err))
	}
	return auth.NewInMemoryTokenBlacklist(), func() {}
}

func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}
