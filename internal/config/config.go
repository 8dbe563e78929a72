package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort         = 8000
	defaultMigrationDir = "file://db/migration"
)

type Config struct {
	Stage        string
	Port         int
	BoardFile    string
	DatabaseUrl  string
	MigrationDir string
}

// Load reads the environment. Outside of prod the values
// in envFile are loaded first; a missing file is not an error.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:        os.Getenv("STAGE"),
		Port:         defaultPort,
		BoardFile:    os.Getenv("BOARD_FILE"),
		DatabaseUrl:  os.Getenv("DATABASE_URL"),
		MigrationDir: os.Getenv("MIGRATION_DIR"),
	}

	if cfg.Stage == "" {
		cfg.Stage = StageDev
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, cerr.ErrInvalidStage(cfg.Stage)
	}

	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.BoardFile == "" {
		return Config{}, cerr.ErrConfigKeyMissing("BOARD_FILE")
	}

	if cfg.MigrationDir == "" {
		cfg.MigrationDir = defaultMigrationDir
	}

	return cfg, nil
}

func (c Config) AnalyticsEnabled() bool {
	return c.DatabaseUrl != ""
}
