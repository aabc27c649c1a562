package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	DataDir   string
	StoreFile string
	BackupDir string
}

// New sets up all config related services
func New() *Config {

	// optional .env overlay, a missing file is fine
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	dataDir := os.Getenv("SEIZURE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	storeFile := os.Getenv("SEIZURE_STORE_FILE")
	if storeFile == "" {
		storeFile = filepath.Join(dataDir, "seizure-store.json")
	}

	backupDir := os.Getenv("SEIZURE_BACKUP_DIR")
	if backupDir == "" {
		backupDir = filepath.Join(dataDir, "backups")
	}

	return &Config{
		DataDir:   dataDir,
		StoreFile: storeFile,
		BackupDir: backupDir,
	}
}
