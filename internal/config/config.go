package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/totl-app/totl-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	CORSAllowedOrigins      []string
	LogLevel                logging.Level
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	InternalJobToken        string
	RecountWorkers          int
	OneSignalEnabled        bool
	OneSignalBaseURL        string
	OneSignalAppID          string
	OneSignalAPIKey         string
	OneSignalTimeout        time.Duration
	OneSignalMaxRetries     int
	OneSignalCircuitEnabled bool
	OneSignalCircuitFails   int
	OneSignalCircuitOpenFor time.Duration
	OneSignalCircuitHalfMax int
	UptraceEnabled          bool
	UptraceDSN              string
	PprofEnabled            bool
	PprofAddr               string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	corsAllowedOrigins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(corsAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := getEnvAsBool("CACHE_ENABLED", "true")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	recountWorkers, err := getEnvAsInt("RECOUNT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOUNT_WORKERS: %w", err)
	}
	if recountWorkers < 1 {
		return Config{}, fmt.Errorf("RECOUNT_WORKERS must be >= 1")
	}

	oneSignalEnabled, err := getEnvAsBool("ONESIGNAL_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	oneSignalTimeout, err := getEnvAsDuration("ONESIGNAL_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	if oneSignalTimeout <= 0 {
		return Config{}, fmt.Errorf("ONESIGNAL_TIMEOUT must be > 0")
	}
	oneSignalMaxRetries, err := getEnvAsInt("ONESIGNAL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse ONESIGNAL_MAX_RETRIES: %w", err)
	}
	if oneSignalMaxRetries < 0 {
		return Config{}, fmt.Errorf("ONESIGNAL_MAX_RETRIES must be >= 0")
	}
	oneSignalCircuitEnabled, err := getEnvAsBool("ONESIGNAL_CIRCUIT_ENABLED", "true")
	if err != nil {
		return Config{}, err
	}
	oneSignalCircuitFails, err := getEnvAsInt("ONESIGNAL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ONESIGNAL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if oneSignalCircuitFails < 1 {
		return Config{}, fmt.Errorf("ONESIGNAL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	oneSignalCircuitOpenFor, err := getEnvAsDuration("ONESIGNAL_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	if oneSignalCircuitOpenFor <= 0 {
		return Config{}, fmt.Errorf("ONESIGNAL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	oneSignalCircuitHalfMax, err := getEnvAsInt("ONESIGNAL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ONESIGNAL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if oneSignalCircuitHalfMax < 1 {
		return Config{}, fmt.Errorf("ONESIGNAL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	oneSignalAppID := strings.TrimSpace(getEnv("ONESIGNAL_APP_ID", ""))
	oneSignalAPIKey := strings.TrimSpace(getEnv("ONESIGNAL_API_KEY", ""))
	if oneSignalEnabled {
		if oneSignalAppID == "" {
			return Config{}, fmt.Errorf("ONESIGNAL_APP_ID is required when ONESIGNAL_ENABLED=true")
		}
		if oneSignalAPIKey == "" {
			return Config{}, fmt.Errorf("ONESIGNAL_API_KEY is required when ONESIGNAL_ENABLED=true")
		}
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := getEnvAsBool("PPROF_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "totl-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		CORSAllowedOrigins:      corsAllowedOrigins,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                   getEnv("DB_URL", ""),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		RecountWorkers:          recountWorkers,
		OneSignalEnabled:        oneSignalEnabled,
		OneSignalBaseURL:        strings.TrimSpace(getEnv("ONESIGNAL_BASE_URL", "https://onesignal.com/api/v1")),
		OneSignalAppID:          oneSignalAppID,
		OneSignalAPIKey:         oneSignalAPIKey,
		OneSignalTimeout:        oneSignalTimeout,
		OneSignalMaxRetries:     oneSignalMaxRetries,
		OneSignalCircuitEnabled: oneSignalCircuitEnabled,
		OneSignalCircuitFails:   oneSignalCircuitFails,
		OneSignalCircuitOpenFor: oneSignalCircuitOpenFor,
		OneSignalCircuitHalfMax: oneSignalCircuitHalfMax,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
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

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
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
