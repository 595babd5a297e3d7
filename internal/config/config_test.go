package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Zero(t, cfg.Server.RateLimit)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.Empty(t, cfg.Store.Bucket)
	assert.Equal(t, "jobs/", cfg.Store.Prefix)

	assert.Equal(t, ModeMock, cfg.Agent.Mode)
	assert.Equal(t, DispatchInline, cfg.Dispatch.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Dispatch.ProcessTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Presign.Expiry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUIZFORGE_STORE_BUCKET", "quiz-jobs")
	t.Setenv("QUIZFORGE_SERVER_PORT", "9090")
	t.Setenv("QUIZFORGE_AGENT_MODE", "live")
	t.Setenv("QUIZFORGE_AGENT_RUNTIME_ARN", "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/quiz")
	t.Setenv("QUIZFORGE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quiz-jobs", cfg.Store.Bucket)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ModeLive, cfg.Agent.Mode)
	assert.Equal(t, "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/quiz", cfg.Agent.RuntimeARN)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quizforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
store:
  bucket: file-bucket
  prefix: state/
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "file-bucket", cfg.Store.Bucket)
	assert.Equal(t, "state/", cfg.Store.Prefix)
	// Unset keys keep their defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("bad agent mode", func(t *testing.T) {
		cfg := base()
		cfg.Agent.Mode = "hybrid"
		require.Error(t, cfg.Validate())
	})

	t.Run("bad dispatch mode", func(t *testing.T) {
		cfg := base()
		cfg.Dispatch.Mode = "sqs"
		require.Error(t, cfg.Validate())
	})

	t.Run("lambda dispatch requires function", func(t *testing.T) {
		cfg := base()
		cfg.Dispatch.Mode = DispatchLambda
		require.Error(t, cfg.Validate())

		cfg.Dispatch.Function = "quizforge-worker"
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing bucket is not a config error", func(t *testing.T) {
		cfg := base()
		cfg.Store.Bucket = ""
		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_PresignBucket(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Bucket = "jobs-bucket"
	assert.Equal(t, "jobs-bucket", cfg.PresignBucket())

	cfg.Presign.Bucket = "uploads-bucket"
	assert.Equal(t, "uploads-bucket", cfg.PresignBucket())
}
