package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Match    MatchConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	PoolMaxConns   int32
	PoolMinConns   int32
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string

	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// MatchConfig selects the scoring profile and tunes the engine's surroundings.
// Profile is validated against the signal registry at startup; a bad value is
// fatal, not a request-time fallback.
type MatchConfig struct {
	Profile  string
	Workers  int
	CacheTTL time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Host:           opt("DB_HOST"),
		Port:           opt("DB_PORT"),
		Name:           opt("DB_NAME"),
		User:           opt("DB_USER"),
		Password:       opt("DB_PASSWORD"),
		SSLMode:        opt("DB_SSL_MODE"),
		PoolMaxConns:   int32(envInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(envInt("DB_POOL_MIN_CONNS", 0)),
		ConnectTimeout: envSeconds("DB_CONNECT_TIMEOUT_SECONDS", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  envSeconds("JWT_ACCESS_EXPIRES_SECONDS", 15*60),
		RefreshExpiresIn: envSeconds("JWT_REFRESH_EXPIRES_SECONDS", 7*24*3600),
	}

	cfg.Match = MatchConfig{
		Profile:  opt("MATCH_PROFILE"),
		Workers:  envInt("MATCH_WORKERS", 0),
		CacheTTL: envSeconds("MATCH_CACHE_TTL_SECONDS", 60),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envSeconds(key string, defSeconds int) time.Duration {
	return time.Duration(envInt(key, defSeconds)) * time.Second
}
