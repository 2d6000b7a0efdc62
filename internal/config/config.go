package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/talent-scout/internal/platform/logging"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"

	defaultJWTSecret = "dev-only-insecure-secret"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	SwaggerEnabled          bool

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	StorageDriver      string
	UploadDir          string
	UploadPublicPrefix string
	UploadMaxBytes     int64
	UploadWorkers      int
	S3Endpoint         string
	S3Region           string
	S3Bucket           string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	S3PublicBaseURL    string
	S3KeyPrefix        string
	S3UsePathStyle     bool

	GeminiAPIKey            string
	GeminiModel             string
	GeminiVideoModel        string
	GeminiBaseURL           string
	OpenAIAPIKey            string
	OpenAIBaseURL           string
	OpenAIImageModel        string
	AITimeout               time.Duration
	VideoPollInterval       time.Duration
	VideoMaxWait            time.Duration
	AICircuitEnabled        bool
	AICircuitFailureCount   int
	AICircuitOpenTimeout    time.Duration
	AICircuitHalfOpenMaxReq int

	LeaderboardRefreshInterval time.Duration

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "talent-scout-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		JWTIssuer:          strings.TrimSpace(getEnv("JWT_ISSUER", "talent-scout")),
		StorageDriver:      strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageLocal))),
		UploadDir:          strings.TrimSpace(getEnv("UPLOAD_DIR", "./uploads")),
		UploadPublicPrefix: strings.TrimSpace(getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads")),
		S3Endpoint:         strings.TrimSpace(getEnv("S3_ENDPOINT", "")),
		S3Region:           strings.TrimSpace(getEnv("S3_REGION", "us-east-1")),
		S3Bucket:           strings.TrimSpace(getEnv("S3_BUCKET", "")),
		S3AccessKeyID:      strings.TrimSpace(getEnv("S3_ACCESS_KEY_ID", "")),
		S3SecretAccessKey:  strings.TrimSpace(getEnv("S3_SECRET_ACCESS_KEY", "")),
		S3PublicBaseURL:    strings.TrimSpace(getEnv("S3_PUBLIC_BASE_URL", "")),
		S3KeyPrefix:        strings.TrimSpace(getEnv("S3_KEY_PREFIX", "uploads")),
		GeminiAPIKey:       strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:        strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.5-flash")),
		GeminiVideoModel:   strings.TrimSpace(getEnv("GEMINI_VIDEO_MODEL", "veo-3.0-fast-generate-001")),
		GeminiBaseURL:      strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")),
		OpenAIAPIKey:       strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
		OpenAIBaseURL:      strings.TrimSpace(getEnv("OPENAI_BASE_URL", "")),
		OpenAIImageModel:   strings.TrimSpace(getEnv("OPENAI_IMAGE_MODEL", "dall-e-3")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = parsePositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	// Multipart uploads and video generation hold the connection open.
	if cfg.WriteTimeout, err = parsePositiveDuration("APP_WRITE_TIMEOUT", "8m"); err != nil {
		return Config{}, err
	}
	if cfg.SwaggerEnabled, err = parseBool("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}

	if cfg.DBDisablePreparedBinary, err = parseBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheEnabled, err = parseBool("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = parsePositiveDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}

	if cfg.JWTTTL, err = parsePositiveDuration("JWT_TTL", "24h"); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if appEnv == EnvProd && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", EnvProd)
	}

	if err := cfg.loadStorage(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadAI(); err != nil {
		return Config{}, err
	}

	if cfg.LeaderboardRefreshInterval, err = parsePositiveDuration("LEADERBOARD_REFRESH_INTERVAL", "5m"); err != nil {
		return Config{}, err
	}

	if err := cfg.loadObservability(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadStorage() error {
	maxBytes, err := getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return fmt.Errorf("parse UPLOAD_MAX_BYTES: %w", err)
	}
	if maxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}
	c.UploadMaxBytes = int64(maxBytes)

	if c.UploadWorkers, err = getEnvAsInt("UPLOAD_WORKERS", 4); err != nil {
		return fmt.Errorf("parse UPLOAD_WORKERS: %w", err)
	}
	if c.UploadWorkers < 1 {
		return fmt.Errorf("UPLOAD_WORKERS must be >= 1")
	}

	if c.S3UsePathStyle, err = parseBool("S3_USE_PATH_STYLE", "false"); err != nil {
		return err
	}

	switch c.StorageDriver {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required when STORAGE_DRIVER=%s", StorageLocal)
		}
		if !strings.HasPrefix(c.UploadPublicPrefix, "/") {
			return fmt.Errorf("UPLOAD_PUBLIC_PREFIX must start with /")
		}
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=%s", StorageS3)
		}
		if c.S3PublicBaseURL == "" {
			return fmt.Errorf("S3_PUBLIC_BASE_URL is required when STORAGE_DRIVER=%s", StorageS3)
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", c.StorageDriver, StorageLocal, StorageS3)
	}
	return nil
}

func (c *Config) loadAI() error {
	var err error
	if c.AITimeout, err = parsePositiveDuration("AI_TIMEOUT", "60s"); err != nil {
		return err
	}
	if c.VideoPollInterval, err = parsePositiveDuration("AI_VIDEO_POLL_INTERVAL", "5s"); err != nil {
		return err
	}
	if c.VideoMaxWait, err = parsePositiveDuration("AI_VIDEO_MAX_WAIT", "6m"); err != nil {
		return err
	}
	if c.AICircuitEnabled, err = parseBool("AI_CIRCUIT_ENABLED", "true"); err != nil {
		return err
	}
	if c.AICircuitFailureCount, err = getEnvAsInt("AI_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse AI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if c.AICircuitFailureCount < 1 {
		return fmt.Errorf("AI_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.AICircuitOpenTimeout, err = parsePositiveDuration("AI_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return err
	}
	if c.AICircuitHalfOpenMaxReq, err = getEnvAsInt("AI_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return fmt.Errorf("parse AI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if c.AICircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("AI_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func (c *Config) loadObservability() error {
	var err error
	if c.PprofEnabled, err = parseBool("PPROF_ENABLED", "false"); err != nil {
		return err
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if c.UptraceEnabled, err = parseBool("UPTRACE_ENABLED", "false"); err != nil {
		return err
	}
	c.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if c.UptraceDSN == "" {
		c.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.UptraceLogsEnabled, err = parseBool("UPTRACE_LOGS_ENABLED", "true"); err != nil {
		return err
	}

	if c.PyroscopeEnabled, err = parseBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return err
	}
	c.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	c.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", c.ServiceName))
	c.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	c.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	c.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if c.PyroscopeUploadRate, err = parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
