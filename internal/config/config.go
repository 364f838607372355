// ABOUTME: Gym configuration loaded through viper from flags, env and config.yaml.
// ABOUTME: Also builds the zap logger and opens the configured storage backend.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Configuration keys.
const (
	KeyDataFile = "data_file"
	KeyBackend  = "backend"
	KeyLogLevel = "log_level"
)

// Supported storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// EnvPrefix prefixes environment overrides, e.g. GYM_DATA_FILE.
const EnvPrefix = "GYM"

// Config stores gym tool configuration.
type Config struct {
	// DataFile is the JSON document (or SQLite database) path. Supports ~ expansion.
	DataFile string `mapstructure:"data_file"`

	// Backend selects the storage backend: "json" (default) or "sqlite".
	Backend string `mapstructure:"backend"`

	// LogLevel is a zap level name. Diagnostics go to stderr.
	LogLevel string `mapstructure:"log_level"`
}

// NewViper returns a viper instance with defaults, env binding and config search paths.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDataFile, storage.DefaultFileName)
	v.SetDefault(KeyBackend, BackendJSON)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gym")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gym")
}

// Load reads the config file if present and resolves every setting.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks backend and log level values.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// GetBackend returns the configured backend, defaulting to "json".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendJSON
	}
	return strings.ToLower(c.Backend)
}

// GetDataFile returns the data file path with ~ expanded.
func (c *Config) GetDataFile() string {
	if c.DataFile == "" {
		return storage.DefaultFileName
	}
	return ExpandPath(c.DataFile)
}

// Level parses LogLevel, defaulting to warn.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage(log *zap.Logger) (storage.Store, error) {
	path := c.GetDataFile()

	switch c.GetBackend() {
	case BackendJSON:
		return storage.NewFileStore(path, log), nil
	case BackendSQLite:
		return storage.Open(path, log)
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}
