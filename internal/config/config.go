package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys, shared by the environment, .env file and CLI bindings
const (
	KeyScanRoot             = "SCAN_ROOT"
	KeyLibraryDir           = "LIBRARY_DIR"
	KeyPreviewOnly          = "PREVIEW_ONLY"
	KeyDeletionGround       = "DELETION_GROUND"
	KeyUnrarBinary          = "UNRAR_BINARY"
	KeyExtractTimeout       = "EXTRACT_TIMEOUT_MINUTES"
	KeySchedule             = "SCHEDULE"
	KeyConfigDir            = "CONFIG_DIR"
	KeyJournalRetentionDays = "JOURNAL_RETENTION_DAYS"
	KeyLogLevel             = "LOG_LEVEL"
)

// File names inside the config directory
const (
	JournalFileName = "journal.db"
	IgnoreFileName  = "ignore.txt"
	LockFileName    = "tvrarcleanup.lock"
)

// ErrUsage marks errors caused by missing or malformed invocation arguments
var ErrUsage = errors.New("usage error")

// Config holds all application configuration. It is built once at startup
// and passed by value, so components never share mutable settings.
type Config struct {
	// Sweep
	ScanRoot       string // directory holding the per-episode directories
	LibraryRoot    string // where finished videos are stored and organized
	PreviewOnly    bool   // log intended actions, touch nothing
	DeletionGround string // quarantine for finished directories; empty means delete

	// Extraction
	UnrarBinary    string
	ExtractTimeout time.Duration // per archive (default: 60 minutes)

	// Scheduling
	Schedule string // cron expression; empty means a single sweep

	// Paths
	ConfigDir   string
	JournalFile string // $CONFIG_DIR/journal.db
	IgnoreFile  string // $CONFIG_DIR/ignore.txt
	LockFile    string // $CONFIG_DIR/tvrarcleanup.lock

	// Journal
	JournalRetentionDays int // default: 30, 0 keeps everything

	// Logging
	LogLevel string
}

// NewViper returns a viper instance reading the environment and an optional
// .env file in the working directory, with defaults applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	SetDefaults(v)
	return v
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPreviewOnly, false)
	v.SetDefault(KeyUnrarBinary, "unrar")
	v.SetDefault(KeyExtractTimeout, 60)
	v.SetDefault(KeyJournalRetentionDays, 30)
	v.SetDefault(KeyLogLevel, "info")
}

// Load builds the configuration from v
func Load(v *viper.Viper) (Config, error) {
	configDir, err := ResolveConfigDir(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		// Sweep
		ScanRoot:       strings.TrimSpace(v.GetString(KeyScanRoot)),
		LibraryRoot:    strings.TrimSpace(v.GetString(KeyLibraryDir)),
		PreviewOnly:    v.GetBool(KeyPreviewOnly),
		DeletionGround: strings.TrimSpace(v.GetString(KeyDeletionGround)),

		// Extraction
		UnrarBinary:    strings.TrimSpace(v.GetString(KeyUnrarBinary)),
		ExtractTimeout: time.Duration(v.GetInt(KeyExtractTimeout)) * time.Minute,

		// Scheduling
		Schedule: strings.TrimSpace(v.GetString(KeySchedule)),

		// Paths
		ConfigDir:   configDir,
		JournalFile: filepath.Join(configDir, JournalFileName),
		IgnoreFile:  filepath.Join(configDir, IgnoreFileName),
		LockFile:    filepath.Join(configDir, LockFileName),

		// Journal
		JournalRetentionDays: v.GetInt(KeyJournalRetentionDays),

		// Logging
		LogLevel: v.GetString(KeyLogLevel),
	}

	// Validate required fields
	if cfg.ScanRoot == "" {
		return Config{}, fmt.Errorf("%s is required: %w", KeyScanRoot, ErrUsage)
	}
	if cfg.LibraryRoot == "" {
		return Config{}, fmt.Errorf("%s is required: %w", KeyLibraryDir, ErrUsage)
	}
	if cfg.UnrarBinary == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyUnrarBinary)
	}
	if cfg.ExtractTimeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", KeyExtractTimeout)
	}
	if cfg.JournalRetentionDays < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyJournalRetentionDays)
	}

	for key, dir := range map[string]*string{
		KeyScanRoot:   &cfg.ScanRoot,
		KeyLibraryDir: &cfg.LibraryRoot,
	} {
		absPath, err := requireDir(*dir)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		*dir = absPath
	}

	if cfg.DeletionGround != "" {
		absPath, err := filepath.Abs(cfg.DeletionGround)
		if err != nil {
			return Config{}, fmt.Errorf("failed to get absolute path for %s: %w", KeyDeletionGround, err)
		}
		cfg.DeletionGround = absPath
	}

	return cfg, nil
}

// ResolveConfigDir returns the absolute config directory, creating it if needed
func ResolveConfigDir(v *viper.Viper) (string, error) {
	configDir := v.GetString(KeyConfigDir)
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "tvrarcleanup")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path for %s: %w", KeyConfigDir, err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

func requireDir(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absPath)
	}
	return absPath, nil
}
