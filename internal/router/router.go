package router

import (
	"github.com/gin-gonic/gin"

	"gstsim/internal/config"
	"gstsim/internal/domain"
	"gstsim/internal/handler"
	"gstsim/internal/middleware"
	"gstsim/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	returnH *handler.ReturnHandler,
	validationH *handler.ValidationHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Standalone field validation for simulation UIs
	protected.POST("/validate-field", validationH.ValidateField)
	protected.GET("/validate-field/fields", validationH.ListFields)

	// Invoice simulations
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id/line-items", invoiceH.UpdateLineItems)
	invoices.POST("/:id/submit", invoiceH.Submit)
	invoices.POST("/:id/transition", middleware.RequireRole(domain.RoleAdmin), invoiceH.ApplyTransition)
	invoices.PUT("/:id/progress", invoiceH.RecordProgress)
	invoices.DELETE("/:id", invoiceH.Delete)

	// Return simulations
	returns := protected.Group("/returns")
	returns.POST("", returnH.Create)
	returns.GET("", returnH.List)
	returns.GET("/export", returnH.Export)
	returns.GET("/:id", returnH.GetByID)
	returns.PUT("/:id/sections/:section", returnH.UpdateSection)
	returns.POST("/:id/submit", returnH.Submit)
	returns.POST("/:id/transition", middleware.RequireRole(domain.RoleAdmin), returnH.ApplyTransition)
	returns.PUT("/:id/progress", returnH.RecordProgress)
	returns.DELETE("/:id", returnH.Delete)

	// Learner statistics
	stats := protected.Group("/stats")
	stats.GET("", statsH.MyStats)
	stats.GET("/learners/:id", middleware.RequireRole(domain.RoleAdmin), statsH.LearnerStats)

	return r
}
