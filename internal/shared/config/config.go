package config

import (
	"os"
	"strconv"
	"strings"

	"cvscore-backend/internal/shared/telemetry"
)

// DefaultMaxTextBytes caps CV and job description text handed to the engine.
const DefaultMaxTextBytes = 256 * 1024

const (
	defaultFeedbackLimit = 3
	defaultSkillsLimit   = 10
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string
	Env             string
	JWTSecret       string
	ATS             ATSConfig
}

// ATSConfig controls how analyses are scored and trimmed.
type ATSConfig struct {
	Profile       string
	ProfilesFile  string
	MaxTextBytes  int
	FeedbackLimit int
	SkillsLimit   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}
	if env == "production" && jwtSecret == "" {
		telemetry.Warn("config.jwt_secret_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     dbURL,
		Env:             env,
		JWTSecret:       jwtSecret,
		ATS: ATSConfig{
			Profile:       strings.ToLower(getEnv("ATS_PROFILE", "standard")),
			ProfilesFile:  getEnv("ATS_PROFILES_FILE", ""),
			MaxTextBytes:  getEnvInt("ATS_MAX_TEXT_BYTES", DefaultMaxTextBytes),
			FeedbackLimit: getEnvInt("ATS_FEEDBACK_LIMIT", defaultFeedbackLimit),
			SkillsLimit:   getEnvInt("ATS_SKILLS_LIMIT", defaultSkillsLimit),
		},
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
