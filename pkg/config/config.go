package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	AppVersion string
	GinMode    string

	LogLevel string
	LogPath  string

	DBDriver    string // sqlite or postgres
	DBPath      string
	DatabaseURL string

	EnrichRecords    bool
	HistoryCacheSize int
	BatchConcurrency int
	IngestWorkers    int
	IngestQueueSize  int

	MetricsEnabled bool
	CORSOrigins    []string

	PlatformConfig string
	// Platforms maps a platform name to its cleanup style. Empty means built-in defaults.
	Platforms map[string]string
}

// PlatformTable is the layout of the optional TOML platform file:
//
//	[platforms]
//	whatsapp = "chat"
//	slack = "chat"
type PlatformTable struct {
	Platforms map[string]string `toml:"platforms"`
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppVersion:       getEnv("APP_VERSION", "v4"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPath:          getEnv("LOG_PATH", "logs/summaryhub.log"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:           getEnv("DB_PATH", "summaryhub.db"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		EnrichRecords:    getEnvBool("ENRICH_RECORDS", true),
		HistoryCacheSize: getEnvInt("HISTORY_CACHE_SIZE", 1024),
		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 8),
		IngestWorkers:    getEnvInt("INGEST_WORKERS", 3),
		IngestQueueSize:  getEnvInt("INGEST_QUEUE_SIZE", 500),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		PlatformConfig:   getEnv("PLATFORM_CONFIG", ""),
	}
	return cfg
}

// LoadPlatforms reads the TOML platform table named by PlatformConfig, if any
func (c *Config) LoadPlatforms() error {
	if c.PlatformConfig == "" {
		return nil
	}
	platforms, err := LoadPlatformTable(c.PlatformConfig)
	if err != nil {
		return err
	}
	c.Platforms = platforms
	return nil
}

// LoadPlatformTable decodes a platform table file. Keys are lower-cased.
func LoadPlatformTable(path string) (map[string]string, error) {
	var table PlatformTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, fmt.Errorf("decode platform table %s: %w", path, err)
	}
	platforms := make(map[string]string, len(table.Platforms))
	for name, style := range table.Platforms {
		platforms[strings.ToLower(strings.TrimSpace(name))] = strings.ToLower(strings.TrimSpace(style))
	}
	return platforms, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
