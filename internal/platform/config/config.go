package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers selectable through STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	JWTSecret      string
	StorageDriver  string
	MigrationsPath string

	// Ledger engine
	LedgerStrictSync bool            // post/void and projection share one transaction
	BalanceTolerance decimal.Decimal // exclusive bound on |debit - credit|

	// Redis is optional; when unset posting locks are skipped and rate limits stay in memory.
	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	PostingLockTTL time.Duration

	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LEDGER_STRICT_SYNC", false)
	v.SetDefault("BALANCE_TOLERANCE", "0.01")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("POSTING_LOCK_TTL", "30s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		LedgerStrictSync:   v.GetBool("LEDGER_STRICT_SYNC"),
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	tolStr := v.GetString("BALANCE_TOLERANCE")
	tol, err := decimal.NewFromString(tolStr)
	if err != nil || !tol.IsPositive() {
		tol = decimal.New(1, -2)
		log.Printf("Warning: Invalid value for BALANCE_TOLERANCE ('%s'). Defaulting to %s.\n", tolStr, tol.String())
	}
	cfg.BalanceTolerance = tol

	ttlStr := v.GetString("POSTING_LOCK_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Second
		log.Printf("Warning: Invalid value for POSTING_LOCK_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.PostingLockTTL = ttl

	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	return cfg
}
