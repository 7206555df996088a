package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "portfolio", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, StorageModeLocal, cfg.Storage.Mode)
	assert.Equal(t, "uploads", cfg.Storage.LocalDir)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadBytes)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("AUTH_SESSION_TTL", "2h")
	t.Setenv("STORAGE_MODE", "s3")
	t.Setenv("STORAGE_S3_BUCKET", "portfolio-images")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, StorageModeS3, cfg.Storage.Mode)
	assert.Equal(t, "portfolio-images", cfg.Storage.S3.Bucket)
}

func TestStorageMode_UnmarshalText(t *testing.T) {
	t.Parallel()

	var m StorageMode
	require.NoError(t, m.UnmarshalText([]byte("S3")))
	assert.Equal(t, StorageModeS3, m)

	assert.Error(t, m.UnmarshalText([]byte("ftp")))
}

func TestSanitize_Guardrails(t *testing.T) {
	t.Parallel()

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, StorageModeLocal, cfg.Storage.Mode)
	assert.Positive(t, cfg.Storage.MaxUploadBytes)
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
