package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig_EnvThenFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_USER", "dispatch")
	t.Setenv("DB_NAME", "dispatch")
	t.Setenv("HTTP_PORT", "9000")

	path := filepath.Join(t.TempDir(), "dispatch.toml")
	require.NoError(t, os.WriteFile(path, []byte("http_port = \"9100\"\naudit_schedule = \"0 * * * * *\"\n"), 0o600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "pg.internal", cfg.DBHost)
	assert.Equal(t, "9100", cfg.HTTPPort)
	assert.Equal(t, "0 * * * * *", cfg.AuditSchedule)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func Test_LoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DB_USER=envfile\nDB_NAME=envdb\nREDIS_ADDRESS=localhost:6379\n"), 0o600))
	for _, key := range []string{"DB_USER", "DB_NAME", "REDIS_ADDRESS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "envfile", cfg.DBUser)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
}

func Test_LoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_USER", "dispatch")
	t.Setenv("DB_NAME", "dispatch")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := LoadConfig("")

	assert.ErrorContains(t, err, "log level")
}

func Test_Config_DSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBUser, cfg.DBPassword, cfg.DBName = "u", "p", "d"

	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
