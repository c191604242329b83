package handler

import (
	"net/http"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/handler/api"
	"ticket-allocator/internal/handler/middleware"
	"ticket-allocator/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Queue       *api.QueueHandler
	Reservation *api.ReservationHandler
	Category    *api.CategoryHandler
	Admin       *api.AdminHandler
	Webhook     *api.PaymentWebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		categories := apiGroup.Group("/categories")
		{
			addRoutes(categories, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Category.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Category.Get},
			})

			buyer := categories.Group("/:id")
			buyer.Use(authMiddleware.RequireAuth())
			addRoutes(buyer, []route{
				{Method: http.MethodPost, Path: "/queue", Handler: h.Queue.Join},
				{Method: http.MethodGet, Path: "/queue/me", Handler: h.Queue.Position},
				{Method: http.MethodDelete, Path: "/queue/me", Handler: h.Queue.Leave},
				{Method: http.MethodPost, Path: "/holds", Handler: h.Reservation.Hold},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPost, Path: "/:id/purchase", Handler: h.Reservation.BeginPurchase},
				{Method: http.MethodPost, Path: "/:id/release", Handler: h.Reservation.Release},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			organizer := authMiddleware.RequireRoleAtLeast(auth.RoleOrganizer)
			adminOnly := authMiddleware.RequireRoleAtLeast(auth.RoleAdmin)
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/categories", Handler: h.Admin.CreateCategory, Mw: []gin.HandlerFunc{organizer}},
				{Method: http.MethodPost, Path: "/categories/:id/deactivate", Handler: h.Admin.DeactivateCategory, Mw: []gin.HandlerFunc{organizer}},
				{Method: http.MethodPost, Path: "/categories/:id/allocate", Handler: h.Admin.Allocate, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/categories/:id/holds", Handler: h.Admin.Hold, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/queue-entries/:id", Handler: h.Admin.RemoveEntry, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}
	}

	webhooks := engine.Group("/webhooks")
	webhooks.Use(middleware.RequireWebhookSecret(cfg.Webhook.Secret))
	addRoutes(webhooks, []route{
		{Method: http.MethodPost, Path: "/payments", Handler: h.Webhook.HandlePayment},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
