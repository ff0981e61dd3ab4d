package http

import (
	"tasks_api/internal/config"
	"tasks_api/internal/db"
	"tasks_api/internal/http/handlers"
	"tasks_api/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the engine with the global middleware and every route.
// limiter may be disabled; cfg only supplies CORS and rate limit settings.
func NewRouter(store *db.Store, limiter *middleware.RateLimiter, cfg *config.Config, version string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(), middleware.Metrics(), middleware.CORS(cfg.CORSOrigins))

	RegisterRoutes(r, store, limiter, cfg, version)
	return r
}

func RegisterRoutes(r *gin.Engine, store *db.Store, limiter *middleware.RateLimiter, cfg *config.Config, version string) {
	h := handlers.NewHandler(store)
	healthHandler := handlers.NewHealthHandler(store, version)

	// Health and metrics are not rate limited
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	api.Use(limiter.Limit(cfg.APIRateLimit, cfg.APIRateWindow))

	api.GET("/", h.Root)

	users := api.Group("/usuarios")
	{
		users.GET("", h.ListUsers)
		users.POST("", middleware.ValidUser(), h.CreateUser)
		users.PUT("/:id", middleware.ValidID(), middleware.ValidUser(), h.UpdateUser)
		users.DELETE("/:id", middleware.ValidID(), h.DeleteUser)
	}

	tasks := api.Group("/tarefas")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", middleware.ValidTask(), h.CreateTask)
		tasks.PUT("/:id", middleware.ValidID(), middleware.ValidTask(), h.UpdateTask)
		tasks.DELETE("/:id", middleware.ValidID(), h.DeleteTask)
	}
}
