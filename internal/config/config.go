package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration

	AuthIntrospectURL string
	AuthTimeout       time.Duration
	StaticTokens      map[string]string

	InternalJobToken string
	AutoLiveInterval time.Duration
	LiveCacheTTL     time.Duration

	NotifierWorkers int
	WebhookURL      string

	TracingEnabled bool
	OTLPEndpoint   string
	OTLPInsecure   bool

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}

	authTimeout, err := time.ParseDuration(getEnv("AUTH_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_TIMEOUT: %w", err)
	}
	if authTimeout <= 0 {
		return Config{}, fmt.Errorf("AUTH_TIMEOUT must be > 0")
	}

	autoLiveInterval, err := time.ParseDuration(getEnv("AUTO_LIVE_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTO_LIVE_INTERVAL: %w", err)
	}
	if autoLiveInterval <= 0 {
		return Config{}, fmt.Errorf("AUTO_LIVE_INTERVAL must be > 0")
	}

	liveCacheTTL, err := time.ParseDuration(getEnv("LIVE_CACHE_TTL", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_CACHE_TTL: %w", err)
	}
	if liveCacheTTL <= 0 {
		return Config{}, fmt.Errorf("LIVE_CACHE_TTL must be > 0")
	}

	notifierWorkers, err := getEnvAsInt("NOTIFIER_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFIER_WORKERS: %w", err)
	}
	if notifierWorkers < 1 {
		return Config{}, fmt.Errorf("NOTIFIER_WORKERS must be >= 1")
	}

	tracingEnabled, err := getEnvAsBool("TRACING_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse TRACING_ENABLED: %w", err)
	}

	otlpInsecure, err := getEnvAsBool("OTLP_INSECURE", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse OTLP_INSECURE: %w", err)
	}

	staticTokens, err := parseTokenMap(getEnv("AUTH_STATIC_TOKENS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_STATIC_TOKENS: %w", err)
	}

	authIntrospectURL := strings.TrimSpace(getEnv("AUTH_INTROSPECT_URL", ""))
	if appEnv == EnvProd && authIntrospectURL == "" {
		return Config{}, fmt.Errorf("AUTH_INTROSPECT_URL is required when APP_ENV=prod")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "secons-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		ShutdownTimeout:    shutdownTimeout,
		AuthIntrospectURL:  authIntrospectURL,
		AuthTimeout:        authTimeout,
		StaticTokens:       staticTokens,
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		AutoLiveInterval:   autoLiveInterval,
		LiveCacheTTL:       liveCacheTTL,
		NotifierWorkers:    notifierWorkers,
		WebhookURL:         strings.TrimSpace(getEnv("SCORE_WEBHOOK_URL", "")),
		TracingEnabled:     tracingEnabled,
		OTLPEndpoint:       strings.TrimSpace(getEnv("OTLP_ENDPOINT", "")),
		OTLPInsecure:       otlpInsecure,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AuthIntrospectURL == "" && len(cfg.StaticTokens) == 0 {
		return Config{}, fmt.Errorf("one of AUTH_INTROSPECT_URL or AUTH_STATIC_TOKENS must be set")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
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

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseBool(value)
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

// parseTokenMap reads "token:userID@role" items, comma separated. Used
// for local runs without the introspection service.
func parseTokenMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid token item %q, expected token:user@role", item)
		}
		token := strings.TrimSpace(segments[0])
		grant := strings.TrimSpace(segments[1])
		if token == "" || grant == "" {
			return nil, fmt.Errorf("empty token or grant in item %q", item)
		}

		out[token] = grant
	}
	return out, nil
}
