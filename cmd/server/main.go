package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaudit "github.com/vendorhub/backend/internal/application/audit"
	appbid "github.com/vendorhub/backend/internal/application/bid"
	appcontract "github.com/vendorhub/backend/internal/application/contract"
	apphelpdesk "github.com/vendorhub/backend/internal/application/helpdesk"
	appidentity "github.com/vendorhub/backend/internal/application/identity"
	appintegration "github.com/vendorhub/backend/internal/application/integration"
	apppartner "github.com/vendorhub/backend/internal/application/partner"
	appperformance "github.com/vendorhub/backend/internal/application/performance"
	appprocurement "github.com/vendorhub/backend/internal/application/procurement"
	apprisk "github.com/vendorhub/backend/internal/application/risk"
	appsurvey "github.com/vendorhub/backend/internal/application/survey"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/connector"
	"github.com/vendorhub/backend/internal/infrastructure/insight"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"github.com/vendorhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const version = "1.0.0"

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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting VendorHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log,
		telemetry.WithDeployment(cfg.App.Env, version))
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	metrics := telemetry.NewMetrics()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond).
		OnSlowQuery(func(time.Duration) { metrics.DBSlowQueries.Inc() })
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	metrics.Registry().MustRegister(db.PoolCollector(cfg.Database.DBName))
	log.Info("Database connected", zap.String("database", cfg.Database.DBName))

	identity.SetPasswordCost(cfg.Auth.BcryptCost)

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		rdb, err := auth.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = rdb.Close()
		}()
		blacklist = auth.NewRedisTokenBlacklist(rdb)
		log.Info("Token blacklist backed by redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled, token revocation is kept in process memory only")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	integrationRepo := persistence.NewGormIntegrationRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	rfpRepo := persistence.NewGormRFPRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	riskRepo := persistence.NewGormRiskAssessmentRepository(db.DB)
	penaltyRepo := persistence.NewGormPenaltyRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	surveyRepo := persistence.NewGormSurveyRepository(db.DB)

	// External systems
	connectorOpts := connector.Options{
		Timeout:   cfg.Sync.AttemptTimeout,
		UserAgent: "vendorhub-backend/" + version,
	}
	if cfg.Telemetry.Enabled {
		connectorOpts.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	clients := connector.NewFactory(connectorOpts)
	runner := appintegration.NewRunner(syncLogRepo, integration.SystemClock{}, appintegration.RunnerConfig{
		Policy: integration.RetryPolicy{
			MaxAttempts: cfg.Sync.MaxAttempts,
			BaseDelay:   cfg.Sync.BaseDelay,
			MaxDelay:    cfg.Sync.MaxDelay,
			Multiplier:  cfg.Sync.Multiplier,
		},
		AttemptTimeout: cfg.Sync.AttemptTimeout,
	}, metrics, log)
	advisor := insight.NewHeuristic()

	// Application services
	tenantService := appidentity.NewTenantService(tenantRepo, persistence.NewGormIdentityTransactionScope(db.DB), log)
	authService := appidentity.NewAuthService(tenantRepo, userRepo, tenantService, jwtService, blacklist,
		appidentity.AuthServiceConfig{AllowRegistration: cfg.Auth.AllowRegistration}, log)
	userService := appidentity.NewUserService(userRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)
	purchaseOrderService := appprocurement.NewPurchaseOrderService(purchaseOrderRepo, vendorRepo, integrationRepo,
		clients, runner, appprocurement.PurchaseOrderServiceConfig{ClaimLease: cfg.Sync.ClaimLease}, log)
	assessmentService := apprisk.NewAssessmentService(riskRepo, vendorRepo, ticketRepo, integrationRepo,
		clients, runner, advisor, log)

	policy, err := identity.NewPolicy(identity.DefaultRoleSets(), cfg.Authz.Overrides)
	if err != nil {
		log.Fatal("Invalid authorization overrides", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Env:  cfg.App.Env,
		HTTP: cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Logger:       log,
		Metrics:      metrics,
		JWT:          jwtService,
		Blacklist:    blacklist,
		Resolver:     appidentity.NewResolver(userRepo, tenantRepo),
		Policy:       policy,
		Recorder:     appaudit.NewRecorder(auditRepo, metrics, log),
		LoginLimiter: middleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst),
		Handlers: router.Handlers{
			System:        handler.NewSystemHandler(db),
			Auth:          handler.NewAuthHandler(authService),
			User:          handler.NewUserHandler(userService),
			AuditLog:      handler.NewAuditLogHandler(appaudit.NewQueryService(auditRepo)),
			Integration:   handler.NewIntegrationHandler(appintegration.NewIntegrationService(integrationRepo, syncLogRepo, log)),
			Vendor:        handler.NewVendorHandler(apppartner.NewVendorService(vendorRepo, log)),
			RFP:           handler.NewRFPHandler(appbid.NewRFPService(rfpRepo, vendorRepo, log)),
			Contract:      handler.NewContractHandler(appcontract.NewContractService(contractRepo, vendorRepo, log)),
			PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
			Risk:          handler.NewRiskHandler(assessmentService),
			Penalty:       handler.NewPenaltyHandler(appperformance.NewPenaltyService(penaltyRepo, vendorRepo, contractRepo, advisor, log)),
			Ticket:        handler.NewTicketHandler(apphelpdesk.NewTicketService(ticketRepo, vendorRepo, log)),
			Survey:        handler.NewSurveyHandler(appsurvey.NewSurveyService(surveyRepo, vendorRepo, log)),
		},
	})

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
