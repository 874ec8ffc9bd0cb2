package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/tarotlog/internal/card"
)

// ErrInvalidConfig is returned when a config value is out of range or unknown
var ErrInvalidConfig = errors.New("invalid config")

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultMaxStorageBytes mirrors the usual browser local storage quota
const DefaultMaxStorageBytes = 5 << 20

// Config represents the application configuration
type Config struct {
	Language            string  `toml:"language"`
	AllowReversed       bool    `toml:"allow_reversed"`
	ReversedProbability float64 `toml:"reversed_probability"`
	StorageBackend      string  `toml:"storage_backend"`
	DataDir             string  `toml:"data_dir"`
	MaxStorageBytes     int64   `toml:"max_storage_bytes"`
	CatalogPath         string  `toml:"catalog_path"`
	ImagesDir           string  `toml:"images_dir"`
	LogLevel            string  `toml:"log_level"`
}

// Keys lists the settable config keys in file order
var Keys = []string{
	"language",
	"allow_reversed",
	"reversed_probability",
	"storage_backend",
	"data_dir",
	"max_storage_bytes",
	"catalog_path",
	"images_dir",
	"log_level",
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		Language:            string(card.ZhTW),
		AllowReversed:       true,
		ReversedProbability: 0.3,
		StorageBackend:      BackendFile,
		MaxStorageBytes:     DefaultMaxStorageBytes,
		LogLevel:            "warn",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetDefaultDataDir returns the directory readings are stored in unless data_dir is set
func GetDefaultDataDir() string {
	return filepath.Join(GetXDGDataHome(), "tarotlog")
}

// GetCacheDir returns the directory for generated card art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "tarotlog")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "tarotlog", "config.toml")
}

// DataDirPath returns the configured data directory or the XDG default
func (c *Config) DataDirPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return GetDefaultDataDir()
}

// Lang returns the configured language
func (c *Config) Lang() card.Lang {
	lang, err := card.ParseLang(c.Language)
	if err != nil {
		return card.ZhTW
	}
	return lang
}

// Validate checks every value against its allowed range
func (c *Config) Validate() error {
	if _, err := card.ParseLang(c.Language); err != nil {
		return fmt.Errorf("%w: language: %v", ErrInvalidConfig, err)
	}
	if c.ReversedProbability < 0 || c.ReversedProbability > 1 {
		return fmt.Errorf("%w: reversed_probability must be between 0 and 1, got %v", ErrInvalidConfig, c.ReversedProbability)
	}
	switch c.StorageBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: storage_backend must be file, sqlite or memory, got %q", ErrInvalidConfig, c.StorageBackend)
	}
	if c.MaxStorageBytes < 0 {
		return fmt.Errorf("%w: max_storage_bytes must not be negative", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level must be debug, info, warn or error, got %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigFilePath())
}

// LoadConfigFrom loads the config file at configPath, creating it with
// defaults if it does not exist
func LoadConfigFrom(configPath string) (*Config, error) {
	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	// Keys missing from the file keep their defaults
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()
	if err := saveConfig(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// saveConfig encodes config to configPath, creating its directory
func saveConfig(configPath string, config *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// Get returns the value of key as text
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "language":
		return c.Language, nil
	case "allow_reversed":
		return strconv.FormatBool(c.AllowReversed), nil
	case "reversed_probability":
		return strconv.FormatFloat(c.ReversedProbability, 'g', -1, 64), nil
	case "storage_backend":
		return c.StorageBackend, nil
	case "data_dir":
		return c.DataDir, nil
	case "max_storage_bytes":
		return strconv.FormatInt(c.MaxStorageBytes, 10), nil
	case "catalog_path":
		return c.CatalogPath, nil
	case "images_dir":
		return c.ImagesDir, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
}

// apply parses value into the field named by key
func (c *Config) apply(key, value string) error {
	var err error
	switch key {
	case "language":
		c.Language = value
	case "allow_reversed":
		c.AllowReversed, err = strconv.ParseBool(value)
	case "reversed_probability":
		c.ReversedProbability, err = strconv.ParseFloat(value, 64)
	case "storage_backend":
		c.StorageBackend = value
	case "data_dir":
		c.DataDir = value
	case "max_storage_bytes":
		c.MaxStorageBytes, err = strconv.ParseInt(value, 10, 64)
	case "catalog_path":
		c.CatalogPath = value
	case "images_dir":
		c.ImagesDir = value
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return nil
}

// Set updates one key in the config file
func Set(key, value string) error {
	return SetIn(GetConfigFilePath(), key, value)
}

// SetIn updates one key in the config file at configPath
func SetIn(configPath, key, value string) error {
	config, err := LoadConfigFrom(configPath)
	if err != nil {
		return err
	}

	if err := config.apply(key, value); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	return saveConfig(configPath, config)
}
