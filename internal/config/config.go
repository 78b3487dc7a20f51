// Package config carga la configuración del servicio: defaults, archivo YAML
// opcional y variables de entorno (en ese orden de precedencia creciente).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Export  ExportConfig  `yaml:"export"`

	// SeedSampleData carga el catálogo de ejemplo si el store arranca vacío.
	SeedSampleData bool `yaml:"seed_sample_data"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type StorageConfig struct {
	// Driver: memory | postgres | sqlite
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// ExportConfig configura la subida de reportes a S3 (o MinIO vía Endpoint).
// Sin credenciales explícitas se usa la cadena por defecto de AWS.
type ExportConfig struct {
	S3Bucket          string `yaml:"s3_bucket"`
	S3Region          string `yaml:"s3_region"`
	S3Endpoint        string `yaml:"s3_endpoint"`
	S3PathStyle       bool   `yaml:"s3_path_style"`
	S3Prefix          string `yaml:"s3_prefix"`
	S3AccessKeyID     string `yaml:"s3_access_key_id"`
	S3SecretAccessKey string `yaml:"s3_secret_access_key"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "petadopt.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-adoption",
		},
		Export: ExportConfig{
			S3Region: "us-east-1",
			S3Prefix: "reports/",
		},
	}
}

// Load arma la configuración: defaults, luego path (si no está vacío), luego env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		fromFile, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv pisa valores con variables de entorno. getenv se inyecta para tests.
//   - PORT, DB_DSN, STORAGE_DRIVER, SQLITE_PATH
//   - LOG_LEVEL, LOG_FORMAT, APP_NAME
//   - SEED_SAMPLE_DATA=true|false
//   - REPORT_S3_BUCKET, REPORT_S3_REGION, REPORT_S3_ENDPOINT, REPORT_S3_PATH_STYLE, REPORT_S3_PREFIX
//   - REPORT_S3_ACCESS_KEY_ID, REPORT_S3_SECRET_ACCESS_KEY
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.HTTP.Addr = ":" + v
	}

	// DB_DSN sin driver explícito implica postgres (como antes).
	if v := strings.TrimSpace(getenv("DB_DSN")); v != "" {
		c.Storage.DSN = v
		c.Storage.Driver = DriverPostgres
	}
	if v := strings.TrimSpace(getenv("STORAGE_DRIVER")); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("SQLITE_PATH")); v != "" {
		c.Storage.SQLitePath = v
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(getenv("APP_NAME")); v != "" {
		c.Log.App = v
	}

	if v := strings.TrimSpace(getenv("SEED_SAMPLE_DATA")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SeedSampleData = b
		}
	}

	if v := strings.TrimSpace(getenv("REPORT_S3_BUCKET")); v != "" {
		c.Export.S3Bucket = v
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_REGION")); v != "" {
		c.Export.S3Region = v
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_ENDPOINT")); v != "" {
		c.Export.S3Endpoint = v
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_PATH_STYLE")); v != "" {
		c.Export.S3PathStyle = strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_PREFIX")); v != "" {
		c.Export.S3Prefix = v
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_ACCESS_KEY_ID")); v != "" {
		c.Export.S3AccessKeyID = v
	}
	if v := strings.TrimSpace(getenv("REPORT_S3_SECRET_ACCESS_KEY")); v != "" {
		c.Export.S3SecretAccessKey = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return fmt.Errorf("http timeouts must not be negative")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}
