// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/triplogapp/triplog-server/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	Sync     SyncConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"omitempty,oneof=json pretty"`
}

// DatabaseConfig holds local store configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file (default: ~/TripLog/triplog.db).
	Path string `validate:"required"`
}

// FirebaseConfig holds remote store configuration.
type FirebaseConfig struct {
	// ProjectID is the Firebase project hosting the trip documents.
	ProjectID string `validate:"required"`
	// CredentialsFile is a path to a service-account key file.
	// Either this or CredentialsJSON must be set outside of tests.
	CredentialsFile string
	// CredentialsJSON is the raw service-account key (FIREBASE_CREDENTIALS env).
	CredentialsJSON string
}

// AuthConfig identifies the syncing user. Sync needs a local user id for
// the store and a remote user id for the document namespace; the remote id
// comes either from a verified Firebase ID token or directly from
// configuration.
type AuthConfig struct {
	// LocalUser is the local store user whose trips sync (default: 1).
	LocalUser int64 `validate:"min=1"`
	// RemoteUser is the remote user id, used when no ID token is given.
	RemoteUser string
	// IDToken is a Firebase ID token to verify and resolve (FIREBASE_ID_TOKEN env).
	IDToken string
}

// SyncConfig holds sync pacing configuration.
type SyncConfig struct {
	// WriteRate caps remote document writes per second (default: 50).
	WriteRate int `validate:"min=1"`
	// WriteBurst is the limiter burst size (default: 10).
	WriteBurst int `validate:"min=1"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("triplog", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (json, pretty)")
	dbPath := fs.String("db-path", "", "Path to the SQLite database file")
	projectID := fs.String("firebase-project", "", "Firebase project ID")
	credentialsFile := fs.String("firebase-credentials", "", "Path to Firebase service-account key file")
	localUser := fs.String("user", "", "Local user id whose trips sync (default: 1)")
	remoteUser := fs.String("remote-user", "", "Remote user id, when not using an ID token")
	writeRate := fs.String("write-rate", "", "Max remote writes per second (default: 50)")
	writeBurst := fs.String("write-burst", "", "Remote write burst size (default: 10)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "LOG_FORMAT", ""),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getConfigValue(*projectID, "FIREBASE_PROJECT_ID", ""),
			CredentialsFile: getConfigValue(*credentialsFile, "FIREBASE_CREDENTIALS_FILE", ""),
			CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS"),
		},
		Auth: AuthConfig{
			LocalUser:  int64(getIntConfigValue(*localUser, "LOCAL_USER_ID", 1)),
			RemoteUser: getConfigValue(*remoteUser, "REMOTE_USER_ID", ""),
			IDToken:    os.Getenv("FIREBASE_ID_TOKEN"),
		},
		Sync: SyncConfig{
			WriteRate:  getIntConfigValue(*writeRate, "SYNC_WRITE_RATE", 50),
			WriteBurst: getIntConfigValue(*writeBurst, "SYNC_WRITE_BURST", 10),
		},
	}

	// Expand and default the database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	v := validation.New()
	if err := v.Validate(c.App); err != nil {
		return err
	}
	if err := v.Validate(c.Logger); err != nil {
		return err
	}
	if err := v.Validate(c.Database); err != nil {
		return err
	}
	if err := v.Validate(c.Firebase); err != nil {
		return err
	}
	if err := v.Validate(c.Auth); err != nil {
		return err
	}
	return v.Validate(c.Sync)
}

// expandDatabasePath expands ~ and makes the path absolute.
// Defaults to ~/TripLog/triplog.db.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "TripLog", "triplog.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
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

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
