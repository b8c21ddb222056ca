package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/config"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/handler"
	"github.com/sangkips/backoffice-api/internal/presentation/http/middleware"
	"github.com/sangkips/backoffice-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice   *handler.InvoiceHandler
	Billing   *handler.BillingHandler
	Client    *handler.ClientHandler
	Employee  *handler.EmployeeHandler
	Payroll   *handler.PayrollHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	middleware.SetupValidator()

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes, all authenticated
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	registerInvoiceRoutes(v1, h, idempotent)
	registerBillingRoutes(v1, h)
	registerClientRoutes(v1, h)
	registerEmployeeRoutes(v1, h)
	registerPayrollRoutes(v1, h, idempotent)

	// Dashboard
	v1.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Dashboard.GetStats)

	return router
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	invoices := v1.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Retried submissions must not allocate a second number
		invoices.POST("", idempotent, h.Invoice.Create)
		invoices.GET("/next-number", h.Invoice.NextNumber)
		invoices.POST("/preview-totals", h.Invoice.PreviewTotals)
		invoices.GET("/export", h.Invoice.Export)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/audit-logs", h.Invoice.AuditLogs)
		invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
		invoices.POST("/:id/pdf", h.Invoice.ArchivePDF)
	}
}

func registerBillingRoutes(v1 *gin.RouterGroup, h *Handlers) {
	billing := v1.Group("/billing-records")
	billing.Use(middleware.RequirePermission("manage-billing"))
	{
		billing.GET("", h.Billing.List)
		billing.POST("", h.Billing.Create)
		billing.GET("/export", h.Billing.Export)
		billing.GET("/:id", h.Billing.Get)
		billing.PUT("/:id", h.Billing.Update)
		billing.DELETE("/:id", h.Billing.Delete)
	}
}

func registerClientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	clients := v1.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/lookup", h.Client.Lookup)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerEmployeeRoutes(v1 *gin.RouterGroup, h *Handlers) {
	employees := v1.Group("/employees")
	employees.Use(middleware.RequirePermission("manage-employees"))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
		employees.PUT("/:id/attendance/:year/:month", h.Employee.RecordAttendance)
	}
}

func registerPayrollRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	payroll := v1.Group("/payroll")
	payroll.Use(middleware.RequirePermission("view-payroll"))
	{
		payroll.GET("", h.Payroll.List)
		payroll.GET("/export", h.Payroll.Export)
		payroll.GET("/adjustments", h.Payroll.ListAdjustments)
		payroll.POST("/adjustments", middleware.RequirePermission("adjust-payroll"), idempotent, h.Payroll.CreateAdjustment)
		payroll.GET("/:employee_id", h.Payroll.Get)
	}
}
