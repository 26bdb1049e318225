package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/handlers"
	"github.com/monocle-dev/tracker/internal/metrics"
	"github.com/monocle-dev/tracker/internal/middleware"
	"github.com/monocle-dev/tracker/internal/realtime"
	"github.com/monocle-dev/tracker/internal/services"
)

// verificationRequestsPerMinute throttles resending verification links.
const verificationRequestsPerMinute = 6

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

func NewRouter(svc *services.Services, hub *realtime.Hub, allowedOrigins []string) *gin.Engine {
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultOrigins
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(svc, hub)
	authenticated := middleware.AuthMiddleware(svc.Auth)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/logout", authenticated, h.Logout)

		api.GET("/email/verify", authenticated, h.VerificationNotice)
		api.GET("/email/verify/:id/:hash", h.VerifyEmail)
		api.POST("/email/verification-notification",
			authenticated, middleware.Throttle(verificationRequestsPerMinute), h.ResendVerification)

		verified := api.Group("", authenticated, middleware.EnsureEmailVerified())
		{
			verified.GET("/ws/:project_id", h.WebSocket)

			verified.POST("/category", h.CreateCategory)
			verified.PUT("/category/:id", h.UpdateCategory)
			verified.DELETE("/category/:id", h.DeleteCategory)
			verified.GET("/category/:id", h.GetCategory)
			verified.GET("/categories", h.ListCategories)

			verified.POST("/project", h.CreateProject)
			verified.PATCH("/project/:id", h.UpdateProject)
			verified.DELETE("/project/:id", h.DeleteProject)
			verified.GET("/project/:id", h.GetProject)
			verified.GET("/projects", h.ListProjects)

			verified.POST("/situation", h.CreateSituation)
			verified.PATCH("/situation/:id", h.UpdateSituation)
			verified.DELETE("/situation/:id", h.DeleteSituation)
			verified.GET("/situation/:id", h.GetSituation)
			verified.GET("/situations/:project_id", h.ListSituations)

			verified.POST("/user", h.CreateUser)
			verified.PATCH("/user", h.UpdateUser)
			verified.PATCH("/user/:id", h.UpdateUser)
			verified.DELETE("/user/:id", h.DeleteUser)
			verified.GET("/user", h.GetUser)
			verified.GET("/user/:id", h.GetUser)
			verified.GET("/users", h.ListUsers)
		}
	}

	return r
}
