package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName        = "KwanzaPay"
	defaultAppEnv         = "development"
	defaultRPCPort        = "50051"
	defaultGatewayPort    = "8081"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultRPCTimeout     = 10 * time.Second
)

// Config captures runtime configuration loaded from environment variables.
// The RPC server and the gateway share the shape but require different keys.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	RPCURL         string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
	RPCTimeout     time.Duration
}

// LoadRPC reads the RPC server configuration. DATABASE_URL is mandatory;
// everything else has defaults.
func LoadRPC() (Config, error) {
	cfg, err := load(defaultRPCPort)
	if err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}
	return cfg, nil
}

// LoadGateway reads the gateway configuration. RPC_URL names the single
// upstream RPC endpoint and is mandatory; REDIS_URL is optional and enables
// idempotent replay of unsafe requests when present.
func LoadGateway() (Config, error) {
	cfg, err := load(defaultGatewayPort)
	if err != nil {
		return Config{}, err
	}
	if cfg.RPCURL == "" {
		return Config{}, fmt.Errorf("RPC_URL must be set")
	}
	return cfg, nil
}

func load(defaultListenPort string) (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultListenPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RPCURL:         strings.TrimSuffix(os.Getenv("RPC_URL"), "/"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdempotencyTTL,
		RPCTimeout:     defaultRPCTimeout,
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", cfg.IdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.RPCTimeout, err = durationEnv("RPC_TIMEOUT", cfg.RPCTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
