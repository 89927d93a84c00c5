package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/lifeos-app/lifeos-backend/internal/adapters/database/pgsql"
	"github.com/lifeos-app/lifeos-backend/internal/adapters/email"
	"github.com/lifeos-app/lifeos-backend/internal/adapters/firebase"
	"github.com/lifeos-app/lifeos-backend/internal/adapters/push"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/core/services"
	"github.com/lifeos-app/lifeos-backend/internal/handlers"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
	"github.com/lifeos-app/lifeos-backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title LifeOS Backend API
// @version 1.0
// @description Backend for the LifeOS personal productivity app.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Outbound adapters
	emailSender := email.NewBrevoSender(cfg)
	pushSender := push.NewWebPushSender(cfg)

	var phoneVerifier portssvc.PhoneVerifierSvc
	if cfg.FirebaseCredentialsFile != "" {
		phoneVerifier, err = firebase.NewPhoneVerifier(context.Background(), cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize phone verifier", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("Phone verification disabled: no Firebase credentials configured")
		phoneVerifier = firebase.DisabledVerifier{}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewContainer(repos, cfg, emailSender, phoneVerifier, pushSender)

	otpSendLimiter, err := middleware.NewOTPRateLimiter(cfg.OTPRateLimit, cfg.RedisURL, "lifeos:ratelimit:otp_send")
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	otpVerifyLimiter, err := middleware.NewOTPRateLimiter(cfg.OTPVerifyRateLimit, cfg.RedisURL, "lifeos:ratelimit:otp_verify")
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Serve uploaded avatars
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.Error("Failed to create uploads directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Static("/uploads", cfg.UploadsDir)

	handlers.RegisterRoutes(r, cfg, serviceContainer, otpSendLimiter, otpVerifyLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		m.Close()
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
