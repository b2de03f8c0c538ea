package handlers

import (
	"net/http"

	_ "expense_tracker/docs"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/metrics"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	exposeInternal bool
	allowedOrigins []string
}

// Option customises a Handler.
type Option func(*Handler)

// WithInternalErrors sends raw internal error messages to clients. Off in production.
func WithInternalErrors(expose bool) Option {
	return func(h *Handler) { h.exposeInternal = expose }
}

// WithAllowedOrigins enables CORS for the given origins. "*" allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.allowedOrigins = origins }
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())
	if len(h.allowedOrigins) > 0 {
		router.Use(corsMiddleware(h.allowedOrigins))
	}

	router.GET("/", h.root)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerAuthRoutes(router)
	h.registerExpenseRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.authMiddleware, h.me)
	}
}

func (h *Handler) registerExpenseRoutes(r *gin.Engine) {
	expenses := r.Group("/expenses", h.authMiddleware)
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/summary", h.expenseSummary)
		expenses.GET("/stream", h.streamSummary)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// @Summary      Banner
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "Expense Tracker API is running")
}
