package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acadsphere/acadsphere-backend/internal/config"
	"github.com/acadsphere/acadsphere-backend/internal/handler"
	"github.com/acadsphere/acadsphere-backend/internal/middleware"
	"github.com/acadsphere/acadsphere-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz         *handler.QuizHandler
	Announcement *handler.AnnouncementHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// The Authorizer guards mutating routes; the default AllowAll keeps them
// open, matching the original deployment.
func SetupRouter(handlers *Handlers, authz middleware.Authorizer, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response carries one.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuthz := middleware.RequireAuthorization(authz)
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMinute, time.Minute)

	// ─── Quizzes ───────────────────────────────────────────────────────
	quizzes := router.Group("/api/quizzes")
	{
		quizzes.GET("", handlers.Quiz.List)
		quizzes.GET("/:id", handlers.Quiz.Get)
		quizzes.POST("", requireAuthz, handlers.Quiz.Create)
		quizzes.PUT("/:id", requireAuthz, handlers.Quiz.Update)
		quizzes.DELETE("/:id", requireAuthz, handlers.Quiz.Delete)
		quizzes.POST("/:id/submit", submitLimiter.Middleware(), handlers.Quiz.Submit)
	}

	// ─── Announcements ─────────────────────────────────────────────────
	announcements := router.Group("/api/announcements")
	{
		announcements.GET("", handlers.Announcement.List)
		announcements.GET("/:id", handlers.Announcement.Get)
		announcements.POST("", requireAuthz, handlers.Announcement.Create)
		announcements.PUT("/:id", requireAuthz, handlers.Announcement.Update)
		announcements.DELETE("/:id", requireAuthz, handlers.Announcement.Delete)
	}

	return router
}
