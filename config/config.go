package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EngineGoCV       = "gocv"
	EngineTensorFlow = "tensorflow"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	FilesLocal = "local"
	FilesAzure = "azure"
)

type Config struct {
	HTTPAddr      string
	TelegramToken string
	LogLevel      slog.Level

	ResourcesDir     string
	ClassifierEngine string

	RecordsBackend string
	RecordsSeed    string
	DatabaseURL    string

	FilesBackend          string
	FilesDir              string
	AzureConnectionString string
	AzureContainer        string

	PluginPropertiesPath string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		ResourcesDir:          getEnv("RESOURCES_DIR", "resources"),
		ClassifierEngine:      strings.ToLower(getEnv("CLASSIFIER_ENGINE", EngineGoCV)),
		RecordsBackend:        strings.ToLower(getEnv("RECORDS_BACKEND", BackendMemory)),
		RecordsSeed:           getEnv("RECORDS_SEED", "records.yaml"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		FilesBackend:          strings.ToLower(getEnv("FILES_BACKEND", FilesLocal)),
		FilesDir:              getEnv("FILES_DIR", "app_formuploads"),
		AzureConnectionString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AzureContainer:        getEnv("AZURE_STORAGE_CONTAINER", "formuploads"),
		PluginPropertiesPath:  getEnv("PLUGIN_PROPERTIES", "plugin.yaml"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ClassifierEngine {
	case EngineGoCV, EngineTensorFlow:
	default:
		return fmt.Errorf("CLASSIFIER_ENGINE: unknown engine %q", c.ClassifierEngine)
	}

	switch c.RecordsBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres records backend")
		}
	default:
		return fmt.Errorf("RECORDS_BACKEND: unknown backend %q", c.RecordsBackend)
	}

	switch c.FilesBackend {
	case FilesLocal:
	case FilesAzure:
		if c.AzureConnectionString == "" {
			return errors.New("AZURE_STORAGE_CONNECTION_STRING is required for azure files backend")
		}
	default:
		return fmt.Errorf("FILES_BACKEND: unknown backend %q", c.FilesBackend)
	}

	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
