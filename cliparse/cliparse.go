package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AdminKeySalt      string
	EpochDBPath       string
	ElectionsFile     string
	RecomputeInterval time.Duration
	PrintAdminKey     bool
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tally-board", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.EpochDBPath, "epoch-db", "", "Path of the local epoch anchor file")
	fs.StringVar(&cfg.ElectionsFile, "elections", "", "YAML file replacing the built-in election pages")
	fs.DurationVar(&cfg.RecomputeInterval, "interval", 0, "Time between recompute passes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

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
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.EpochDBPath == "" {
		cfg.EpochDBPath = os.Getenv("EPOCH_DB_PATH")
		if cfg.EpochDBPath == "" {
			cfg.EpochDBPath = "epochs.db"
		}
	}

	if cfg.ElectionsFile == "" {
		cfg.ElectionsFile = os.Getenv("ELECTIONS_FILE")
	}

	if cfg.RecomputeInterval == 0 {
		if s := os.Getenv("RECOMPUTE_INTERVAL"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid RECOMPUTE_INTERVAL env variable")
			}
			cfg.RecomputeInterval = d
		} else {
			cfg.RecomputeInterval = 60 * time.Second
		}
	}
	if cfg.RecomputeInterval < 0 {
		return Config{}, errors.New("recompute interval must be positive")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	// Printing the admin key needs nothing else
	if cfg.PrintAdminKey {
		return cfg, nil
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	return cfg, nil
}
