package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort       = 3318
	defaultSQLitePath = "survey.db"
	defaultSessionTTL = 12 * time.Hour
)

type Config struct {
	Port         int
	StorageType  string
	StorageURL   string
	SessionStore string
	SessionURL   string
	SessionTTL   time.Duration
	SurveyFile   string
	AdminKeySalt string
}

// LoadEnv loads .env style files into the environment. Missing files are
// skipped and variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var sessionTTL string

	fs := flag.NewFlagSet("survey", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StorageType, "t", "", "Response storage type (memory, sqlite, postgres, redis or mongo)")
	fs.StringVar(&cfg.StorageURL, "d", "", "Response storage URL")
	fs.StringVar(&cfg.SessionStore, "session-store", "", "Session storage type (memory or redis)")
	fs.StringVar(&cfg.SessionURL, "session-url", "", "Session storage URL")
	fs.StringVar(&sessionTTL, "session-ttl", "", "Session lifetime, e.g. 12h")
	fs.StringVar(&cfg.SurveyFile, "s", "", "Survey definition file (YAML or JSON)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

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

	if cfg.StorageType == "" {
		cfg.StorageType = os.Getenv("STORAGE_TYPE")
		if cfg.StorageType == "" {
			cfg.StorageType = "sqlite"
		}
	}
	if cfg.StorageURL == "" {
		cfg.StorageURL = os.Getenv("STORAGE_URL")
	}
	if cfg.StorageURL == "" {
		switch cfg.StorageType {
		case "sqlite":
			cfg.StorageURL = defaultSQLitePath
		case "memory":
		default:
			return Config{}, fmt.Errorf("storage URL required for %s (use -d or STORAGE_URL env)", cfg.StorageType)
		}
	}

	if cfg.SessionStore == "" {
		cfg.SessionStore = os.Getenv("SESSION_STORE")
		if cfg.SessionStore == "" {
			cfg.SessionStore = "memory"
		}
	}
	if cfg.SessionURL == "" {
		cfg.SessionURL = os.Getenv("SESSION_URL")
	}
	if cfg.SessionStore != "memory" && cfg.SessionURL == "" {
		return Config{}, errors.New("session storage URL required (use --session-url or SESSION_URL env)")
	}

	if sessionTTL == "" {
		sessionTTL = os.Getenv("SESSION_TTL")
	}
	cfg.SessionTTL = defaultSessionTTL
	if sessionTTL != "" {
		ttl, err := time.ParseDuration(sessionTTL)
		if err != nil || ttl < 0 {
			return Config{}, errors.New("invalid SESSION_TTL")
		}
		cfg.SessionTTL = ttl
	}

	if cfg.SurveyFile == "" {
		cfg.SurveyFile = os.Getenv("SURVEY_FILE")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}
