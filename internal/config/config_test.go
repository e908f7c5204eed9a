package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MYSQL_USER", "root")
	t.Setenv("SMTP_USER", "noreply@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3005", cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiration)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, time.Hour, cfg.App.AdminEmailTTL)
	// 未配置发件人时回退到 SMTP 账号
	assert.Equal(t, "noreply@example.com", cfg.Email.From)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MYSQL_USER", "root")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES", "15m")
	t.Setenv("RATE_LIMIT_MAX", "20")
	t.Setenv("LOG_LEVEL", "not-a-level")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiration)
	assert.Equal(t, 20, cfg.RateLimit.Max)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_USER", "root")

	_, err := Load()
	assert.Error(t, err)
}

func TestMySQLConfig_DSN(t *testing.T) {
	c := MySQLConfig{User: "root", Password: "pw", Host: "db", Port: "3306", Database: "meeting"}
	dsn := c.DSN()
	assert.Contains(t, dsn, "root:pw@tcp(db:3306)/meeting")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
