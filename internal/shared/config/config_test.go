package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Assert defaults apply without a config file", func(t *testing.T) {
		require := require.New(t)
		t.Chdir(t.TempDir())
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")

		cfg, err := Load(NewFlagSet())
		require.NoError(err)
		require.Equal("token", cfg.TelegramBotToken)
		require.Equal("8080", cfg.HTTPPort)
		require.Equal("./data", cfg.StoragePath)
		require.Equal(AppEnvProduction, cfg.AppEnv)
		require.Equal(StoreDriverFile, cfg.Store.Driver)
		require.Equal("localhost:6379", cfg.Store.Redis.Address)
	})

	t.Run("Assert missing token is rejected", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("TELEGRAM_BOT_TOKEN", "")

		_, err := Load(nil)
		require.ErrorIs(t, err, errors.ErrMissingBotToken)
	})

	t.Run("Assert file, env and flags layer in order", func(t *testing.T) {
		require := require.New(t)
		t.Chdir(t.TempDir())
		t.Setenv("STORE__DSN", "from-env.db")

		path := writeConfig(t, "config.yaml", `
telegram_bot_token: file-token
http_port: "9000"
app_env: development
allowed_users: [1, 2]
store:
  driver: redis
  dsn: from-file.db
  redis:
    address: redis:6379
    db: 3
`)
		flags := NewFlagSet()
		require.NoError(flags.Parse([]string{"--config", path, "--store.driver", "sqlite"}))

		cfg, err := Load(flags)
		require.NoError(err)
		require.Equal("file-token", cfg.TelegramBotToken)
		require.Equal("9000", cfg.HTTPPort)
		require.Equal(AppEnvDevelopment, cfg.AppEnv)
		require.Equal([]int64{1, 2}, cfg.AllowedUsers)
		require.Equal(StoreDriverSqlite, cfg.Store.Driver)
		require.Equal("from-env.db", cfg.Store.DSN)
		require.Equal("redis:6379", cfg.Store.Redis.Address)
		require.Equal(3, cfg.Store.Redis.DB)
	})

	t.Run("Assert allowed users parse from env", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("ALLOWED_USERS", "10,20")

		cfg, err := Load(nil)
		require.NoError(t, err)
		require.Equal(t, []int64{10, 20}, cfg.AllowedUsers)
	})

	t.Run("Assert unknown store driver is rejected", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("STORE__DRIVER", "cassandra")

		_, err := Load(nil)
		require.ErrorIs(t, err, ErrInvalidStoreDriver)
	})
}

func TestParseAllowedUsers(t *testing.T) {
	require := require.New(t)

	require.Equal([]int64{1, 22, 333}, ParseAllowedUsers("1, 22,,333,abc"))
	require.Empty(ParseAllowedUsers(""))
}

func TestIsAuthorized(t *testing.T) {
	require := require.New(t)

	require.True((&Config{}).IsAuthorized(5))
	require.True((&Config{AllowedUsers: []int64{5}}).IsAuthorized(5))
	require.False((&Config{AllowedUsers: []int64{5}}).IsAuthorized(6))
}
