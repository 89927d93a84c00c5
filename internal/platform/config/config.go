package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// One-time code validity window, shared by login, registration and reset codes.
	OTPExpiryDuration time.Duration

	// Outbound transactional email (Brevo HTTP API).
	BrevoAPIKey       string `mapstructure:"BREVO_API_KEY"`
	EmailFromName     string `mapstructure:"EMAIL_FROM_NAME"`
	EmailFromAddress  string `mapstructure:"EMAIL_FROM_ADDRESS"`
	FeedbackRecipient string `mapstructure:"FEEDBACK_RECIPIENT"`

	// Firebase Admin credentials for phone ID-token verification.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Web Push (VAPID) keys.
	VAPIDPublicKey  string `mapstructure:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `mapstructure:"VAPID_PRIVATE_KEY"`
	VAPIDSubscriber string `mapstructure:"VAPID_SUBSCRIBER"`

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Optional Redis backing for the rate limiter; in-memory when unset.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Directory for uploaded avatar files, served under /uploads.
	UploadsDir string `mapstructure:"UPLOADS_DIR"`

	// Rate limits in ulule/limiter notation, e.g. "5-M". The send limit guards
	// the code-issuing endpoints, the verify limit guards code-consuming ones
	// so codes cannot be brute-forced inside their validity window.
	OTPRateLimit       string `mapstructure:"OTP_RATE_LIMIT"`
	OTPVerifyRateLimit string `mapstructure:"OTP_VERIFY_RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "lifeos-backend")
	viper.SetDefault("OTP_EXPIRY_DURATION", "10m")
	viper.SetDefault("BREVO_API_KEY", "")
	viper.SetDefault("EMAIL_FROM_NAME", "LifeOS")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "")
	viper.SetDefault("FEEDBACK_RECIPIENT", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("VAPID_PUBLIC_KEY", "")
	viper.SetDefault("VAPID_PRIVATE_KEY", "")
	viper.SetDefault("VAPID_SUBSCRIBER", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("OTP_RATE_LIMIT", "5-M")
	viper.SetDefault("OTP_VERIFY_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	// Session tokens are the only credential the server hands out; refusing to
	// start without a signing secret beats silently minting forgeable tokens.
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 720 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "lifeos-backend"
	}

	otpExpiryStr := viper.GetString("OTP_EXPIRY_DURATION")
	otpExpiryDuration, err := time.ParseDuration(otpExpiryStr)
	if err != nil {
		otpExpiryDuration = 10 * time.Minute
		if otpExpiryStr != "" {
			log.Printf("Warning: Invalid value for OTP_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", otpExpiryStr, otpExpiryDuration.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.OTPExpiryDuration = otpExpiryDuration

	cfg.BrevoAPIKey = viper.GetString("BREVO_API_KEY")
	cfg.EmailFromName = viper.GetString("EMAIL_FROM_NAME")
	cfg.EmailFromAddress = viper.GetString("EMAIL_FROM_ADDRESS")
	cfg.FeedbackRecipient = viper.GetString("FEEDBACK_RECIPIENT")
	if cfg.BrevoAPIKey == "" {
		log.Println("Warning: BREVO_API_KEY not set. Outbound email will fail.")
	}

	cfg.FirebaseCredentialsFile = viper.GetString("FIREBASE_CREDENTIALS_FILE")
	if cfg.FirebaseCredentialsFile == "" {
		log.Println("Warning: FIREBASE_CREDENTIALS_FILE not set. Phone authentication will not function.")
	}

	cfg.VAPIDPublicKey = viper.GetString("VAPID_PUBLIC_KEY")
	cfg.VAPIDPrivateKey = viper.GetString("VAPID_PRIVATE_KEY")
	cfg.VAPIDSubscriber = viper.GetString("VAPID_SUBSCRIBER")
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		log.Println("Warning: VAPID keys not set. Web push notifications will not function.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.UploadsDir = viper.GetString("UPLOADS_DIR")
	cfg.OTPRateLimit = viper.GetString("OTP_RATE_LIMIT")
	cfg.OTPVerifyRateLimit = viper.GetString("OTP_VERIFY_RATE_LIMIT")

	return cfg, nil
}
