package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petadopt.yaml")
	content := `
http:
  addr: ":9090"
  read_timeout: 2s
storage:
  driver: sqlite
  sqlite_path: /tmp/pets.db
log:
  level: debug
  format: json
seed_sample_data: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout, "lo no declarado conserva el default")
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/pets.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.SeedSampleData)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(envMap(map[string]string{
		"PORT":                 "3000",
		"DB_DSN":               "postgres://u:p@localhost/pets",
		"LOG_FORMAT":           "json",
		"SEED_SAMPLE_DATA":     "true",
		"REPORT_S3_BUCKET":     "reports",
		"REPORT_S3_PATH_STYLE": "TRUE",

		"REPORT_S3_ACCESS_KEY_ID":     "minio",
		"REPORT_S3_SECRET_ACCESS_KEY": "minio-secret",
	}))

	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@localhost/pets", cfg.Storage.DSN)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, "reports", cfg.Export.S3Bucket)
	assert.True(t, cfg.Export.S3PathStyle)
	assert.Equal(t, "minio", cfg.Export.S3AccessKeyID)
	assert.Equal(t, "minio-secret", cfg.Export.S3SecretAccessKey)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv_ExplicitDriverWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(envMap(map[string]string{
		"DB_DSN":         "postgres://ignored",
		"STORAGE_DRIVER": "SQLite",
		"SQLITE_PATH":    "/var/lib/petadopt.db",
	}))

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/petadopt.db", cfg.Storage.SQLitePath)
}

func TestValidate_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverPostgres
	assert.Error(t, cfg.Validate(), "postgres sin dsn")

	cfg = DefaultConfig()
	cfg.Storage.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.HTTP.Addr = ""
	assert.Error(t, cfg.Validate())
}
