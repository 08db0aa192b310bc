package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownKeys = []string{
	"LISTEN_ADDR", "DEFAULT_LOCALE", "PHRASEBOOK_PATH",
	"RATE_ENABLED", "RATE_RPS", "RATE_BURST", "RATE_KEY_HEADER", "TRUST_XFF",
	"RETRY_AFTER", "ADD_RATELIMIT_HEADERS", "CONCURRENCY_MAX", "CONCURRENCY_TIMEOUT",
	"RATE_STATS_ENABLED", "RATE_STATS_REDIS_ADDR", "RATE_STATS_REDIS_PASSWORD",
	"RATE_STATS_REDIS_DB", "RATE_STATS_PREFIX", "RATE_STATS_TTL", "RATE_STATS_BUCKET",
	"RATE_STATS_TRACK_KEYS", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUT", "LOG_DEV",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range knownKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "es", cfg.DefaultLocale)
	assert.True(t, cfg.RateEnabled)
	assert.Equal(t, 10.0, cfg.RateRPS)
	assert.Equal(t, 20, cfg.RateBurst)
	assert.Equal(t, time.Second, cfg.RetryAfter)
	assert.Equal(t, 100, cfg.ConcurrencyMax)
	assert.False(t, cfg.Stats.RedisEnabled)
	assert.Equal(t, "componente:stats", cfg.Stats.Prefix)
	assert.Equal(t, 24*time.Hour, cfg.Stats.TTL)
	assert.Equal(t, "minute", cfg.Stats.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
}

func TestFromEnv_LowRPSDefaultsBurstToOne(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_RPS", "0.5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.RateBurst)
}

func TestFromEnv_ExplicitBurstWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_RPS", "0.5")
	t.Setenv("RATE_BURST", "7")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RateBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("DEFAULT_LOCALE", "EN")
	t.Setenv("PHRASEBOOK_PATH", "/etc/componente/phrases.yaml")
	t.Setenv("CONCURRENCY_TIMEOUT", "250ms")
	t.Setenv("TRUST_XFF", "true")
	t.Setenv("LOG_DEV", "1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "/etc/componente/phrases.yaml", cfg.PhrasebookPath)
	assert.Equal(t, 250*time.Millisecond, cfg.ConcurrencyTimeout)
	assert.True(t, cfg.TrustXFF)
	assert.True(t, cfg.Log.Dev)
}

func TestFromEnv_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"negative rps", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"zero burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"negative concurrency", map[string]string{"CONCURRENCY_MAX": "-2"}, "CONCURRENCY_MAX"},
		{"redis without addr", map[string]string{"RATE_STATS_ENABLED": "true"}, "RATE_STATS_REDIS_ADDR"},
		{"unknown bucket", map[string]string{"RATE_STATS_BUCKET": "hour"}, "RATE_STATS_BUCKET"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFromEnv_MalformedValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"RATE_RPS", "abc"},
		{"RATE_ENABLED", "yes"},
		{"CONCURRENCY_TIMEOUT", "5"},
		{"RATE_BURST", "x"},
		{"RATE_STATS_REDIS_DB", "z"},
		{"CONCURRENCY_MAX", "1.5"},
		{"LOG_DEV", "sim"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key+":")
		})
	}
}

func TestFromEnv_ReportsEveryMalformedValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_RPS", "fast")
	t.Setenv("RETRY_AFTER", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_RPS:")
	assert.Contains(t, err.Error(), "RETRY_AFTER:")
}

func TestFromEnv_TrimsNumericValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_BURST", " 5 ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RateBurst)
}

func TestLoadEnvFiles_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LISTEN_ADDR=:7000\nCOMPONENTE_TEST_ONLY=from-file\n"), 0o600))

	t.Setenv("LISTEN_ADDR", ":6000")
	t.Setenv("COMPONENTE_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("COMPONENTE_TEST_ONLY"))

	LoadEnvFiles(dir)

	assert.Equal(t, ":6000", os.Getenv("LISTEN_ADDR"))
	assert.Equal(t, "from-file", os.Getenv("COMPONENTE_TEST_ONLY"))
}

func TestLoadEnvFiles_LocalFileTakesPriority(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COMPONENTE_TEST_PRIO=base\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("COMPONENTE_TEST_PRIO=local\n"), 0o600))

	t.Setenv("COMPONENTE_TEST_PRIO", "")
	require.NoError(t, os.Unsetenv("COMPONENTE_TEST_PRIO"))

	LoadEnvFiles(dir)

	assert.Equal(t, "local", os.Getenv("COMPONENTE_TEST_PRIO"))
}

func TestLoadEnvFiles_NoFiles(t *testing.T) {
	LoadEnvFiles(t.TempDir())
}
