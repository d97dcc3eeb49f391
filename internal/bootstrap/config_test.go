package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=9000\nSTORAGE_TYPE=mongo\nTICK_INTERVAL=500ms\nDEFAULT_RATING=1200\nLOCAL_CORS=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Setup(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, StorageMongo, cfg.StorageType)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 1200.0, cfg.DefaultRating)
	assert.True(t, cfg.IsLocalCors)
	assert.Equal(t, 150*time.Second, cfg.TimedGameDuration)
}

func TestSetupDefaultsWithoutFile(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 3*time.Second, cfg.StartGrace)
	assert.Equal(t, 32.0, cfg.RatingK)
	assert.Empty(t, cfg.RedisUrl)
}

func TestSetupEnvOverrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "9999")
	t.Setenv("RESULT_LINGER", "1m")

	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.GrpcPort)
	assert.Equal(t, time.Minute, cfg.ResultLinger)
}
