package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort         = 8000
	defaultMigrationDir = "file://db/migration"
)

var ErrInvalidStage = errors.New("stage must be either dev or prod")

type Config struct {
	Stage string
	Port  int

	// Empty disables the analytics database
	DatabaseURL  string
	MigrationDir string
	LogLevel     log.Level
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// Load reads the environment. Outside of prod the variables are first
// loaded from envFile, which may be missing.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Stage:        os.Getenv("STAGE"),
		Port:         defaultPort,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MigrationDir: os.Getenv("MIGRATION_DIR"),
		LogLevel:     log.InfoLevel,
	}

	if cfg.Stage == "" {
		cfg.Stage = StageDev
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("%w, got %q", ErrInvalidStage, cfg.Stage)
	}

	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", portEnv)
		}
		cfg.Port = port
	}

	if cfg.MigrationDir == "" {
		cfg.MigrationDir = defaultMigrationDir
	}

	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		level, err := log.ParseLevel(levelEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", levelEnv, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func MustLoad(envFile string) Config {
	cfg, err := Load(envFile)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	return cfg
}
