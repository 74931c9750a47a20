package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ecommerce", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 2*time.Minute, cfg.Otp.TTL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxImageBytes)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "60")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("API_PREFIX", "/api/v1/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "/api/v1", cfg.HTTP.APIPrefix)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "secret")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ACCESS_USER_TOKEN_SIGNATURE", "a")
	t.Setenv("REFRESH_USER_TOKEN_SIGNATURE", "b")
	t.Setenv("ACCESS_SYSTEM_TOKEN_SIGNATURE", "c")
	t.Setenv("REFRESH_SYSTEM_TOKEN_SIGNATURE", "d")

	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "3s")

	dbCfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, dbCfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, dbCfg.MaxConnLifetime)

	t.Setenv("DB_PORT", "abc")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
