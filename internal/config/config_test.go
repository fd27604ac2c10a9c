package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// isolate points CONFIG_PATH and DOTENV_PATH into an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DOTENV_PATH", filepath.Join(dir, "missing.env"))
	return dir
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

storage:
  driver: "postgres"
  auto_migrate: false

database:
  dsn: "postgres://u:p@localhost:5432/community"
  max_conns: 10

redis:
  addr: "localhost:6379"
  notification_stream: "admin"

log:
  level: "debug"
  format: "text"

community:
  pro_threshold: 500
  expert_threshold: 1500
  progress_ceiling: 2500
  notification_limit: 20
  seed_defaults: false

insight:
  top_n: 3
  notify_threshold: 4
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "admin", cfg.Redis.NotificationStream)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Community.NotificationLimit)
	assert.False(t, cfg.Community.SeedDefaults)
	assert.Equal(t, 1500, cfg.Community.BadgeThresholds().Expert)

	assert.Equal(t, 3, cfg.Insight.TopN)
	assert.Equal(t, 3, cfg.Insight.ExampleLimit)
	assert.Equal(t, 4, cfg.Insight.NotifyThreshold)
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 50, cfg.Community.NotificationLimit)
	assert.True(t, cfg.Community.SeedDefaults)
	assert.Equal(t, 1000, cfg.Community.ProThreshold)
	assert.Equal(t, 5, cfg.Insight.TopN)
	assert.Equal(t, 2, cfg.Insight.NotifyThreshold)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("INSIGHT_TOP_N", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Insight.TopN)
}

func TestLoad_EnvDisablesTrueDefaults(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_AUTO_MIGRATE", "false")
	t.Setenv("COMMUNITY_SEED_DEFAULTS", "false")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Storage.AutoMigrate)
	assert.False(t, cfg.Community.SeedDefaults)
}

func TestLoad_YAMLKeepsTrueDefaultsWhenOmitted(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", "server:\n  port: 9090\n"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Storage.AutoMigrate)
	assert.True(t, cfg.Community.SeedDefaults)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOTENV_PATH", writeFile(t, dir, ".env", "STORAGE_DRIVER=postgres\n"))
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("STORAGE_DRIVER") })

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn is required")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:   StorageConfig{Driver: "Memory"},
			Community: CommunityConfig{ProThreshold: 1000, ExpertThreshold: 2000, ProgressCeiling: 3000, NotificationLimit: 50},
			Insight:   InsightConfig{TopN: 5, ExampleLimit: 3, NotifyThreshold: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "sqlite" }, wantErr: "storage.driver"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }, wantErr: "database.dsn"},
		{name: "expert below pro", mutate: func(c *Config) { c.Community.ExpertThreshold = 900 }, wantErr: "expert_threshold"},
		{name: "ceiling below expert", mutate: func(c *Config) { c.Community.ProgressCeiling = 1500 }, wantErr: "progress_ceiling"},
		{name: "zero notification limit", mutate: func(c *Config) { c.Community.NotificationLimit = 0 }, wantErr: "notification_limit"},
		{name: "zero top n", mutate: func(c *Config) { c.Insight.TopN = 0 }, wantErr: "top_n"},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.PerMinute = -1 }, wantErr: "rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, DriverMemory, cfg.Storage.Driver)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
