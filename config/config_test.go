package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  host: "localhost"
  port: 5432
  username: "u"
  password: "p"
  name: "db"
kafka:
  host: "localhost"
  port: 9092
  route_events_topic_name: "route.events"
  stop_updates_topic_name: "route.stop_updates"
redis:
  host: "localhost"
  port: 6379
  key_prefix: "rb:"
routebox:
  http_addr: ":8080"
  kafka_consumer_group: "route-api"
  cache_ttl_seconds: 600
  cors_origins: ["http://localhost:3000"]
  monitor_interval_seconds: 30
geocoder:
  mode: "fake"
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "u", cfg.Database.Username)
	require.Equal(t, "route.stop_updates", cfg.Kafka.StopUpdatesTopicName)
	require.Equal(t, 6379, cfg.Redis.Port)
	require.Equal(t, "rb:", cfg.Redis.KeyPrefix)
	require.Equal(t, ":8080", cfg.RouteBox.HTTPAddr)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.RouteBox.CORSOrigins)
	require.Equal(t, 30, cfg.RouteBox.MonitorIntervalSeconds)
	require.Equal(t, "fake", cfg.Geocoder.Mode)

	require.Equal(t, "postgres://u:p@localhost:5432/db?sslmode=disable", cfg.Database.ConnString())
	require.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers())
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("database:\n  password: \"from-file\"\n"), 0o600))
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("database: [oops"), 0o600))
	_, err = LoadConfig(p)
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("ROUTEBOX_TEST_SWAGGER=/tmp/swagger.json\n"), 0o600))
	t.Setenv("ROUTEBOX_TEST_SWAGGER", "")
	require.NoError(t, os.Unsetenv("ROUTEBOX_TEST_SWAGGER"))

	require.NoError(t, LoadEnv(p, filepath.Join(dir, "missing.env")))
	require.Equal(t, "/tmp/swagger.json", os.Getenv("ROUTEBOX_TEST_SWAGGER"))
}
