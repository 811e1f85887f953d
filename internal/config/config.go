// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Server  ServerConfig
	Service ServiceConfig
	Upload  UploadConfig
	Import  ImportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	Version     string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds library storage configuration.
type StorageConfig struct {
	// BasePath is the root for everything the server persists:
	// {base}/db for the entity store, {base}/search for the index,
	// {base}/originals and {base}/thumbnails for photo files.
	BasePath string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// ServiceConfig holds entity data service configuration.
type ServiceConfig struct {
	// SimulatedLatency delays every data service call by this much.
	// Zero in production; development profiles may set it to keep
	// callers honest about the asynchronous service boundary.
	SimulatedLatency time.Duration
}

// UploadConfig holds upload orchestration configuration.
type UploadConfig struct {
	// ProgressStepDelay is the pause between synthetic progress steps.
	ProgressStepDelay time.Duration
	// MaxUploadSize caps a single multipart request body in bytes.
	MaxUploadSize int64
	// RatePerSecond limits upload requests per client.
	RatePerSecond int
	// RateBurst is the token bucket burst for upload requests.
	RateBurst int
}

// ImportConfig holds import directory watcher configuration.
type ImportConfig struct {
	// WatchPath is a directory whose image files are automatically
	// ingested through the upload pipeline. Empty disables watching.
	WatchPath string
	// SettleDelay is how long a file must stay unchanged before ingestion.
	SettleDelay time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	storagePath := flag.String("storage-path", "", "Base path for library storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	simulatedLatency := flag.String("simulated-latency", "", "Artificial data service latency (default: 0)")

	progressStepDelay := flag.String("progress-step-delay", "", "Delay between upload progress steps (default: 100ms)")
	maxUploadSize := flag.String("max-upload-size", "", "Max multipart upload size in bytes (default: 104857600)")
	uploadRate := flag.String("upload-rate", "", "Upload requests allowed per second (default: 2)")
	uploadBurst := flag.String("upload-burst", "", "Upload request burst (default: 5)")

	importPath := flag.String("import-path", "", "Directory watched for automatic photo import")
	settleDelay := flag.String("import-settle-delay", "", "Quiet period before a watched file is imported (default: 2s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			Version:     getConfigValue("", "APP_VERSION", "1.0.0"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			BasePath: getConfigValue(*storagePath, "STORAGE_PATH", ""),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "PhotoVault Server"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxUploadSize: getInt64ConfigValue(*maxUploadSize, "MAX_UPLOAD_SIZE", 100<<20),
			RatePerSecond: getIntConfigValue(*uploadRate, "UPLOAD_RATE", 2),
			RateBurst:     getIntConfigValue(*uploadBurst, "UPLOAD_BURST", 5),
		},
		Import: ImportConfig{
			WatchPath: getConfigValue(*importPath, "IMPORT_PATH", ""),
		},
	}

	// Parse durations.
	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Service.SimulatedLatency, err = parseDurationValue(*simulatedLatency, "SIMULATED_LATENCY", "0s"); err != nil {
		return nil, err
	}
	if cfg.Upload.ProgressStepDelay, err = parseDurationValue(*progressStepDelay, "PROGRESS_STEP_DELAY", "100ms"); err != nil {
		return nil, err
	}
	if cfg.Import.SettleDelay, err = parseDurationValue(*settleDelay, "IMPORT_SETTLE_DELAY", "2s"); err != nil {
		return nil, err
	}

	// Expand and validate storage path.
	if err := cfg.expandStoragePath(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	// Expand import path when configured.
	if err := cfg.expandImportPath(); err != nil {
		return nil, fmt.Errorf("invalid import path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.BasePath == "" {
		return errors.New("storage base path cannot be empty after expansion")
	}

	if c.Upload.MaxUploadSize <= 0 {
		return errors.New("max upload size must be positive")
	}

	if c.Upload.RatePerSecond <= 0 || c.Upload.RateBurst <= 0 {
		return errors.New("upload rate and burst must be positive")
	}

	return nil
}

// DBPath returns the entity store directory under the storage base.
func (c *Config) DBPath() string {
	return filepath.Join(c.Storage.BasePath, "db")
}

// SearchPath returns the search index directory under the storage base.
func (c *Config) SearchPath() string {
	return filepath.Join(c.Storage.BasePath, "search")
}

// MediaPath returns the photo file directory under the storage base.
func (c *Config) MediaPath() string {
	return filepath.Join(c.Storage.BasePath, "media")
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandStoragePath expands ~ and makes the path absolute.
// Defaults to ~/PhotoVault when unset.
func (c *Config) expandStoragePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "PhotoVault")

	expanded, err := expandPath(c.Storage.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.BasePath = expanded
	return nil
}

// expandImportPath expands ~ and makes the path absolute.
// An empty path stays empty, which disables the watcher.
func (c *Config) expandImportPath() error {
	if c.Import.WatchPath == "" {
		return nil
	}

	expanded, err := expandPath(c.Import.WatchPath, "")
	if err != nil {
		return err
	}
	c.Import.WatchPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getInt64ConfigValue returns an int64 from flag, env var, or default.
func getInt64ConfigValue(flagValue, envKey string, defaultValue int64) int64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int64
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
