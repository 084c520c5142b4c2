package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Storage paths
	DatabasePath string
	DataDir      string // attachments live under DataDir/attachments
	BackupDir    string
	BackupKeep   int // snapshots retained before pruning

	// Retention schedule override (optional YAML file)
	RetentionSchedulePath string

	// Auth
	JWTSecret string
	AdminKey  string

	// Notification channel
	SSEMaxClients int

	// Logging
	LogDir      string
	MaxLogFiles int

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		DatabasePath: getEnv("DATABASE_PATH", "arkiv.db"),
		DataDir:      getEnv("DATA_DIR", "data"),
		BackupDir:    getEnv("BACKUP_DIR", "backups"),
		BackupKeep:   getEnvInt("BACKUP_KEEP", 10),

		RetentionSchedulePath: getEnv("RETENTION_SCHEDULE_PATH", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		AdminKey:  getEnv("ADMIN_KEY", ""),

		SSEMaxClients: getEnvInt("SSE_MAX_CLIENTS", 100),

		LogDir:      getEnv("LOG_DIR", ""),
		MaxLogFiles: getEnvInt("MAX_LOG_FILES", 7),

		// Debug defaults to true outside prod
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
