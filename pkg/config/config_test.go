package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "conf.ini")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "缺少配置文件时应自动创建")

	assert.Equal(t, "8091", cfg.GetString(KeyServerPort))
	assert.Equal(t, "sqlite", cfg.GetString(KeyDBType))
	assert.Equal(t, "catalog.db", cfg.GetString(KeyDBName))
	assert.Equal(t, 60, cfg.GetInt(KeyRateLimitWritePerMinute))
	assert.Equal(t, "0 0 4 * * *", cfg.GetString(KeyTaskPruneSchedule))
	assert.False(t, cfg.GetBool(KeyServerSeed))
}

func TestNewConfigFromFileReadsSectionsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	content := `[System]
Port = 9000
Seed = true

[Database]
Type = postgres
Host = db.internal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv(EnvVarName(KeyDBHost), "db.override")
	t.Setenv(EnvVarName(KeyRateLimitWriteBurst), "3")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.GetString(KeyServerPort))
	assert.True(t, cfg.GetBool(KeyServerSeed))
	assert.Equal(t, "postgres", cfg.GetString(KeyDBType))
	assert.Equal(t, "db.override", cfg.GetString(KeyDBHost))
	assert.Equal(t, 3, cfg.GetInt(KeyRateLimitWriteBurst))
	// 文件里没有的键回落到内部默认值
	assert.Equal(t, 60, cfg.GetInt(KeyRateLimitWritePerMinute))
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "CATALOG_DATABASE_HOST", EnvVarName(KeyDBHost))
	assert.Equal(t, "CATALOG_TASK_PRUNESCHEDULE", EnvVarName(KeyTaskPruneSchedule))
}
