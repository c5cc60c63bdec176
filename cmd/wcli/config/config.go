package config

import (
	"os"
	"path/filepath"
	"time"

	"wcli/internal/logger"
)

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)

	if err != nil {
		logger.Warn("Invalid duration in %s: %v", key, err)
		return defaultValue
	}

	return parsed
}

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Could not determine home directory: %v", err)
		return ""
	}
	return homeDir
}

func getDefaultDatabasePath(fallback string, profile string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".wcli", profile, "wcli.db")
}

type Configuration struct {
	Profile      string
	DatabasePath string

	// EnvFilePath is where the PASS/EC2/PEM triple is read from,
	// overridable with the --env flag.
	EnvFilePath string

	ConnectTimeout time.Duration
	ExecTimeout    time.Duration
}

var Profile = GetEnv("WCLI_PROFILE", "default")
var DatabasePath = GetEnv("WCLI_DATABASE_PATH", getDefaultDatabasePath("wcli.db", Profile))

var Config = &Configuration{
	Profile:      Profile,
	DatabasePath: DatabasePath,

	EnvFilePath: GetEnv("WCLI_ENV_FILE", ".env"),

	ConnectTimeout: getDurationEnv("WCLI_CONNECT_TIMEOUT", 10*time.Second),
	ExecTimeout:    getDurationEnv("WCLI_EXEC_TIMEOUT", 120*time.Second),
}
