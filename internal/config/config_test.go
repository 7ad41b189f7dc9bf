package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "myqueue", cfg.Queue.Name)
	require.Equal(t, "ToDo", cfg.Table.Name)
	require.False(t, cfg.Table.AutoMigrate)
}

func TestLoadFileYAMLOverridesNonZeroValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
env: staging
route_prefix: /api/
queue:
  name: orders
table:
  name: Tasks
  auto_migrate: true
limits:
  per_minute: 30
  window: 30s
mysql:
  password: s3cret
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg := Defaults()
	require.NoError(t, LoadFile(path, &cfg))
	require.Equal(t, "staging", cfg.Env)
	require.Equal(t, "/api", cfg.RoutePrefix)
	require.Equal(t, "orders", cfg.Queue.Name)
	require.Equal(t, "Tasks", cfg.Table.Name)
	require.True(t, cfg.Table.AutoMigrate)
	require.Equal(t, 30, cfg.Limits.PerMinute)
	require.Equal(t, 30*time.Second, cfg.Limits.Window)
	require.Equal(t, "s3cret", cfg.MySQL.Password)
	// 未出现在文件中的字段保持默认值
	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, "root", cfg.MySQL.User)
}

func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"http_addr":":9090","mysql":{"dsn":"app:pw@tcp(db:3306)/todo"}}`), 0o600))

	cfg := Defaults()
	require.NoError(t, LoadFile(path, &cfg))
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "app:pw@tcp(db:3306)/todo", cfg.MySQL.DSN())
	require.Equal(t, "app:******@tcp(db:3306)/todo", cfg.MySQL.DSNMasked())
}

func TestLoadFileRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("env = 'dev'"), 0o600))
	cfg := Defaults()
	require.Error(t, LoadFile(path, &cfg))
}

func TestDSNFromFields(t *testing.T) {
	m := MySQLConfig{User: "u", Password: "p", Host: "db", Port: 3307, DBName: "x", Params: "parseTime=true"}
	require.Equal(t, "u:p@tcp(db:3307)/x?parseTime=true", m.DSN())
	require.Equal(t, "u:******@tcp(db:3307)/x?parseTime=true", m.DSNMasked())
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Queue.Name = " "
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Table.Name = ""
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Env = "prod"
	require.ErrorContains(t, cfg.Validate(), "insecure mysql password")

	cfg.MySQL.Password = "a-strong-one"
	require.NoError(t, cfg.Validate())

	cfg = Defaults()
	cfg.RoutePrefix = "api"
	require.Error(t, cfg.Validate())
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoadReportsMalformedConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mysql: [unclosed"), 0o600))

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "config.yaml")
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoadAppliesConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("queue:\n  name: jobs\n"), 0o600))
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "jobs", cfg.Queue.Name)
}
