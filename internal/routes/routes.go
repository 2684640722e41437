package routes

import (
	"net/http"

	"github.com/askhub/askhub-backend/internal/handler"
	"github.com/askhub/askhub-backend/internal/middleware"
	"github.com/askhub/askhub-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles every handler the router needs
type Handlers struct {
	Users         *handler.UserHandler
	Questions     *handler.QuestionHandler
	Comments      *handler.CommentHandler
	Notifications *handler.NotificationHandler
	Tags          *handler.TagHandler
	Admin         *handler.AdminHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, redisClient *redis.Client) {
	// Operational endpoints (no auth)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The whole console is admin-only
	admin := router.Group("/api/admin",
		middleware.JWTAuth(jwtManager),
		middleware.RequireAdmin(),
		middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()),
	)

	users := admin.Group("/users")
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.PATCH("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)

	questions := admin.Group("/questions")
	questions.GET("", h.Questions.List)
	questions.GET("/:id", h.Questions.Get)
	questions.DELETE("/:id", h.Questions.Delete)

	admin.GET("/comments", h.Comments.List)
	admin.GET("/notifications", h.Notifications.List)
	admin.GET("/tags", h.Tags.List)

	admin.GET("/overview", h.Admin.Overview)
	admin.POST("/actions", h.Admin.DispatchAction)
	admin.GET("/report", h.Admin.Report)
}
