package handlers

import (
	"github.com/lifeos-app/lifeos-backend/cmd/docs"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	otpSendLimiter *limiter.Limiter,
	otpVerifyLimiter *limiter.Limiter,
) {
	r.GET("/", getHome)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: authentication, Google redirect flow, VAPID key
	registerAuthRoutes(r, services, otpSendLimiter, otpVerifyLimiter)
	registerGoogleOAuthRoutes(r, services, cfg)
	registerPublicNotificationRoutes(r, services.Notification)

	// Authenticated API routes
	setupAPIRoutes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the authenticated groups and delegates to specific
// entity route registrations.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	authMW := middleware.AuthMiddleware(cfg.JWTSecret)

	// Profile routes live under /api/auth next to the public auth endpoints.
	authed := r.Group("/api/auth", authMW)
	registerUserRoutes(authed, services, cfg)

	api := r.Group("/api", authMW)
	registerTaskRoutes(api, services.Task)
	registerHabitRoutes(api, services.Habit)
	registerMoodRoutes(api, services.Mood)
	registerNotificationRoutes(api, services.Notification)
	registerFeedbackRoutes(api, services.Email)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
