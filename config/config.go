package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	ServiceRoleKey    string
	FrontendURL       string
	// reCAPTCHA Configuration
	RecaptchaSecretKey string
	RecaptchaSiteKey   string
	// S3-compatible Storage Configuration
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	ResumesBucket     string
	AvatarsBucket     string
	// Redis/Upstash Configuration
	RedisURL      string
	RedisPassword string
	// SMTP Configuration (job alert emails)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Job Alert Matcher Configuration
	JobAlertIntervalMinutes int
	JobAlertEnabled         bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; absent in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trailing slashes break URL joins later (e.g. .co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		ServiceRoleKey:    getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// reCAPTCHA
		RecaptchaSecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
		RecaptchaSiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
		// S3 Storage
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		ResumesBucket:     getEnv("RESUMES_BUCKET", "resumes"),
		AvatarsBucket:     getEnv("AVATARS_BUCKET", "avatars"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword: getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),
		// SMTP
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "alerts@localhost"),
		// Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
		// Job Alerts
		JobAlertIntervalMinutes: getEnvInt("JOB_ALERT_INTERVAL_MINUTES", 60),
		JobAlertEnabled:         getEnvBool("JOB_ALERT_ENABLED", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RecaptchaSecretKey == "" {
		log.Println("WARNING: RECAPTCHA_SECRET_KEY not configured. Job posting will skip CAPTCHA verification.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and realtime fan-out will use in-process fallbacks.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
