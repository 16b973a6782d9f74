package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, "hs256", c.Auth.Mode)
	require.Equal(t, 120, c.Rate.MaxRequests)
	require.Equal(t, 10, c.Rate.Switch.Limit)
	require.Equal(t, "info", c.Log.Level)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: prod
server:
  addr: ":9090"
auth:
  mode: hs256
  jwt_secret: from-file
storage:
  dsn: postgres://localhost/pesantren
rate:
  enabled: true
  max_requests: 30
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PESANTREN_JWT_SECRET", "from-env")
	t.Setenv("PESANTREN_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "prod", c.App.Env)
	require.Equal(t, ":9090", c.Server.Addr)
	require.Equal(t, "from-env", c.Auth.JWTSecret, "env must win over file")
	require.Equal(t, "debug", c.Log.Level)
	require.True(t, c.Rate.Enabled)
	require.Equal(t, 30, c.Rate.MaxRequests)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestMustDuration(t *testing.T) {
	require.Equal(t, 5*time.Second, MustDuration("5s", time.Minute))
	require.Equal(t, time.Minute, MustDuration("garbage", time.Minute))
	require.Equal(t, time.Minute, MustDuration("-1s", time.Minute))
}
