package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported DATABASE_TYPE values
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseMongo    = "mongo"
)

const (
	defaultPort          = 3318
	defaultMongoDatabase = "movienight"
	defaultStoreTimeout  = 5 * time.Second
	minJWTSecretLen      = 32
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	MongoDatabase string
	JWTSecret     string
	AdminKey      string
	StoreTimeout  time.Duration
	LogLevel      string
	LogFormat     string
}

// LoadDotEnv reads a .env file into the environment if one exists.
// Variables already set in the environment are left alone.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("movie-night", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres, sqlite or mongo)")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", "", "MongoDB database name")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", 0, "Timeout for each store round trip")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (json or text)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Maintenance admin key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabasePostgres, DatabaseSQLite, DatabaseMongo:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = os.Getenv("MONGO_DATABASE")
		if cfg.MongoDatabase == "" {
			cfg.MongoDatabase = defaultMongoDatabase
		}
	}

	if cfg.StoreTimeout == 0 {
		if timeoutStr := os.Getenv("STORE_TIMEOUT"); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				return Config{}, errors.New("invalid STORE_TIMEOUT env variable")
			}
			cfg.StoreTimeout = timeout
		} else {
			cfg.StoreTimeout = defaultStoreTimeout
		}
	}
	if cfg.StoreTimeout < 0 {
		return Config{}, errors.New("store timeout must be positive")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return Config{}, fmt.Errorf("JWT_SECRET required (at least %d characters)", minJWTSecretLen)
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	return cfg, nil
}
