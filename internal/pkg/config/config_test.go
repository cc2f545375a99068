package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_GROUP_ID", "STORAGE_DRIVER", "POSTGRES_DSN", "REDIS_ADDR", "LOG_LEVEL", "TIMEZONE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "chuta.db", cfg.Storage.DSN)
	assert.Equal(t, "America/Sao_Paulo", cfg.Pool.Timezone)
	assert.Equal(t, 3, cfg.Pool.WindowDays)
	assert.Equal(t, 30, cfg.Pool.ProxyNameMaxLen)
	assert.Equal(t, 8, cfg.Telegram.Workers)
	assert.Equal(t, time.Second, cfg.Telegram.SendInterval)
	assert.Equal(t, ":8080", cfg.Health.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateBot(), "token is missing")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  token: "abc"
  group_id: -100123
  send_interval: 2s
storage:
  driver: postgres
  dsn: "postgres://localhost/chuta"
pool:
  window_days: 4
logging:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Telegram.Token)
	assert.Equal(t, int64(-100123), cfg.Telegram.GroupID)
	assert.Equal(t, 2*time.Second, cfg.Telegram.SendInterval)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Pool.WindowDays)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_GROUP_ID", "-42")
	t.Setenv("POSTGRES_DSN", "postgres://db/chuta")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfig(t, "telegram:\n  token: from-file\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, int64(-42), cfg.Telegram.GroupID)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver, "a postgres DSN selects the postgres driver")
	assert.Equal(t, "postgres://db/chuta", cfg.Storage.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_BadGroupID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_GROUP_ID", "grupo")

	_, err := Load("")
	assert.ErrorContains(t, err, "TELEGRAM_GROUP_ID")
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "telegram: [\n"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Storage.Driver = "mysql"
	cfg.Pool.Timezone = "Mars/Olympus"
	cfg.Logging.Format = "xml"

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown storage.driver "mysql"`)
	assert.ErrorContains(t, err, `invalid pool.timezone "Mars/Olympus"`)
	assert.ErrorContains(t, err, `unknown logging.format "xml"`)

	cfg.Storage.Driver = DriverPostgres
	cfg.Storage.DSN = ""
	assert.ErrorContains(t, cfg.Validate(), "storage.dsn is required")
}
