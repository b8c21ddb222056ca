package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/infrastructure/database"
	"github.com/sangkips/backoffice-api/internal/infrastructure/lock"
	"github.com/sangkips/backoffice-api/internal/infrastructure/logger"
	"github.com/sangkips/backoffice-api/internal/infrastructure/pdf"
	"github.com/sangkips/backoffice-api/internal/infrastructure/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/storage"
	"github.com/sangkips/backoffice-api/internal/presentation/http/handler"
	"github.com/sangkips/backoffice-api/internal/presentation/http/middleware"
	"github.com/sangkips/backoffice-api/internal/presentation/http/routes"
	"github.com/sangkips/backoffice-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	for _, w := range cfg.Warnings {
		appLogger.Warn(w)
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Run auto-migrations
	if err := database.AutoMigrate(db, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Invoice numbering lock: Redis when configured, in-process otherwise
	var locker service.Locker
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.App.Name)
	} else {
		appLogger.Warn("REDIS_ADDR not set, invoice numbering lock is process-local")
		locker = lock.NewLocalLocker()
	}

	// PDF archive store is optional
	var store service.ObjectStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Storage(ctx, cfg.Storage, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to configure object storage", zap.Error(err))
		}
		store = s3Store
	}

	renderer := pdf.NewChromeRenderer(cfg.PDF, appLogger)
	defer renderer.Close()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewInvoiceAuditLogRepository(db)
	clientRepo := repository.NewClientRepository(db)
	billingRepo := repository.NewBillingRecordRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	adjustmentRepo := repository.NewPayrollAdjustmentRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, auditRepo, clientRepo, locker, cfg.Invoice, appLogger.Named("invoice"))
	documentService := service.NewDocumentService(invoiceRepo, renderer, store, cfg.Company, appLogger.Named("document"))
	payrollService := service.NewPayrollService(employeeRepo, attendanceRepo, adjustmentRepo, appLogger.Named("payroll"))
	exportService := service.NewExportService(invoiceRepo, billingRepo, payrollService)
	billingService := service.NewBillingService(billingRepo)
	clientService := service.NewClientService(clientRepo)
	employeeService := service.NewEmployeeService(employeeRepo, attendanceRepo)
	dashboardService := service.NewDashboardService(summaryRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice:   handler.NewInvoiceHandler(invoiceService, documentService, exportService),
		Billing:   handler.NewBillingHandler(billingService, exportService),
		Client:    handler.NewClientHandler(clientService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		Payroll:   handler.NewPayrollHandler(payrollService, exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter: middleware.NewUserRateLimiter(ctx,
			middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration)),
		Logger: appLogger,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo, appLogger)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server",
			zap.String("name", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
}

type expiredKeyPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// purgeIdempotencyKeys drops expired idempotency keys once an hour.
func purgeIdempotencyKeys(ctx context.Context, repo expiredKeyPurger, l *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				l.Warn("Failed to purge idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				l.Debug("Purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
