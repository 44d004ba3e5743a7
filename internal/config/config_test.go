package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_DefaultsWithEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.News.CountOnHomePage)
	assert.Equal(t, []string{"редиска", "негодяй"}, cfg.News.BannedWords)
	assert.Equal(t, "Не ругайтесь!", cfg.News.BannedWordWarning)
	assert.Equal(t, "sessionid", cfg.Session.CookieName)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: memory
session:
  secret: "`+testSecret+`"
  ttl: 1h
news:
  count_on_home_page: 5
  banned_words: ["плохо"]
`), 0o600))

	t.Setenv("NEWS_COUNT_ON_HOME_PAGE", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"плохо"}, cfg.News.BannedWords)
	assert.Equal(t, 7, cfg.News.CountOnHomePage, "env overrides the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "short secret", env: map[string]string{"STORAGE_DRIVER": "memory", "SESSION_SECRET": "short"}},
		{name: "postgres without dsn", env: map[string]string{"STORAGE_DRIVER": "postgres", "SESSION_SECRET": testSecret, "DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mysql", "SESSION_SECRET": testSecret}},
		{name: "bad cron", env: map[string]string{"STORAGE_DRIVER": "memory", "SESSION_SECRET": testSecret, "STATS_CRON_SCHEDULE": "every minute"}},
		{name: "bad timezone", env: map[string]string{"STORAGE_DRIVER": "memory", "SESSION_SECRET": testSecret, "WORKER_TIMEZONE": "Mars/Olympus"}},
		{name: "zero page size", env: map[string]string{"STORAGE_DRIVER": "memory", "SESSION_SECRET": testSecret, "NEWS_COUNT_ON_HOME_PAGE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule(""))
	assert.Error(t, ValidateCronSchedule("* * *"))
}
