package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// validConfig returns a config that passes validate on its own.
func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Adapter.RemoteURL = "https://script.example.com/exec"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a zero-value config fails validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LastSourceWins verifies that later non-zero fields override
// earlier ones while zero fields keep earlier values.
func TestBuild_LastSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{Version: "2.0.0"}, Workers: Workers{SyncBatchSize: 25}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, 25, cfg.Workers.SyncBatchSize)
	assert.Equal(t, defaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, defaultTokenIssuer, cfg.App.AdminTokenIssuer)
}

// TestBuild_DerivesProbeAddress verifies that the probe address falls back to
// the remote host with the scheme's default port.
func TestBuild_DerivesProbeAddress(t *testing.T) {
	tests := []struct {
		name      string
		remoteURL string
		expected  string
	}{
		{"https default port", "https://script.example.com/exec", "script.example.com:443"},
		{"http default port", "http://10.0.0.5/sheet", "10.0.0.5:80"},
		{"explicit port", "http://10.0.0.5:8081/sheet", "10.0.0.5:8081"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := validConfig()
			base.Adapter.RemoteURL = tt.remoteURL

			b := newConfigBuilder()
			b.configs = append(b.configs, base)

			cfg, err := b.build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Connectivity.ProbeAddress)
		})
	}
}

// TestBuild_Validation verifies each validation group.
func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"empty data dir", func(cfg *StructuredConfig) { cfg.Storage.DataDir = "" }, ErrInvalidStorageConfigs},
		{"in-memory dsn", func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = ":memory:" }, ErrInvalidStorageConfigs},
		{"missing remote url", func(cfg *StructuredConfig) { cfg.Adapter.RemoteURL = "" }, ErrInvalidAdapterConfigs},
		{"remote url without host", func(cfg *StructuredConfig) { cfg.Adapter.RemoteURL = "/exec" }, ErrInvalidAdapterConfigs},
		{"negative batch size", func(cfg *StructuredConfig) { cfg.Workers.SyncBatchSize = -1 }, ErrInvalidWorkerConfigs},
		{"admin key without duration", func(cfg *StructuredConfig) {
			cfg.App.AdminTokenKey = "secret"
			cfg.App.AdminTokenDuration = -time.Second
		}, ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_AppendsDefaults verifies the fluent interface and content.
func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDefaults())
	require.Len(t, b.configs, 1)
	assert.Equal(t, defaultConfig(), b.configs[0])
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("ADAPTER_REMOTE_URL", "https://env.example.com")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "https://env.example.com", b.configs[0].Adapter.RemoteURL)
}

// TestWithEnv_SetsError verifies that a malformed variable sets b.err.
func TestWithEnv_SetsError(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("WORKERS_SYNC_BATCH_SIZE", "many")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsParsedFlags verifies flags land in one config entry.
func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-r", "https://flag.example.com"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "https://flag.example.com", b.configs[0].Adapter.RemoteURL)
}

// TestWithFlags_SetsError verifies that a malformed flag sets b.err.
func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-sync-batch-size", "many"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFile ──────────────────────────────────────────────────────────────────

// TestWithFile_NoOp_WhenNoPathSet verifies that withFile does nothing when
// no config has a ConfigFilePath.
func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withFile())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithFile_AppendsConfig_WhenValidJSON verifies that a valid JSON file is
// parsed and appended.
func TestWithFile_AppendsConfig_WhenValidJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"version": "json-version"},
		"workers": map[string]any{"sync_interval": "2m"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, 2*time.Minute, b.configs[1].Workers.SyncInterval)
}

// TestWithFile_AppendsConfig_WhenValidTOML verifies TOML is picked by extension.
func TestWithFile_AppendsConfig_WhenValidTOML(t *testing.T) {
	path := writeTempFile(t, "device.toml", `
[storage]
data_dir = "/data"

[adapter]
remote_url = "https://toml.example.com/exec"
request_timeout = "15s"

[connectivity]
attempts_before_reconnect = 4
`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "/data", b.configs[1].Storage.DataDir)
	assert.Equal(t, "https://toml.example.com/exec", b.configs[1].Adapter.RemoteURL)
	assert.Equal(t, 15*time.Second, b.configs[1].Adapter.RequestTimeout)
	assert.Equal(t, uint64(4), b.configs[1].Connectivity.AttemptsBeforeReconnect)
}

// TestWithFile_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: "/nonexistent/config.json"})
	b.withFile()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithFile_SetsError_WhenMalformed verifies decode errors for both formats.
func TestWithFile_SetsError_WhenMalformed(t *testing.T) {
	for _, name := range []string{"bad.json", "bad.toml"} {
		t.Run(name, func(t *testing.T) {
			path := writeTempFile(t, name, "{{ not a config")

			b := newConfigBuilder()
			b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
			b.withFile()

			assert.Error(t, b.err)
		})
	}
}

// TestWithFile_UsesLastPath verifies that when multiple configs carry a path,
// the last one is used.
func TestWithFile_UsesLastPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "first"}})
	last := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "last-wins"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: last},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── full chain ────────────────────────────────────────────────────────────────

// TestBuild_FullChain verifies defaults, env, flags and file merge together.
func TestBuild_FullChain(t *testing.T) {
	clearEnvVars(t)
	path := writeTempJSONConfig(t, map[string]any{
		"workers": map[string]any{"sync_batch_size": 40},
	})
	t.Setenv("ADAPTER_REMOTE_URL", "https://env.example.com/exec")
	t.Setenv("CONFIG", path)

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-data-dir", "/flags/data"}).
		withFile().
		build()

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/exec", cfg.Adapter.RemoteURL)
	assert.Equal(t, "/flags/data", cfg.Storage.DataDir)
	assert.Equal(t, 40, cfg.Workers.SyncBatchSize)
	assert.Equal(t, defaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, "env.example.com:443", cfg.Connectivity.ProbeAddress)
}

func TestLoadStructuredConfig_UsesGivenArgs(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadStructuredConfig([]string{"-r", "http://10.0.0.5:8000/exec", "-sync-batch-size", "25"})

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/exec", cfg.Adapter.RemoteURL)
	assert.Equal(t, 25, cfg.Workers.SyncBatchSize)
	assert.Equal(t, "10.0.0.5:8000", cfg.Connectivity.ProbeAddress)
}

func TestLoadStructuredConfig_InvalidFlag(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadStructuredConfig([]string{"-no-such-flag"})

	assert.Nil(t, cfg)
	assert.Error(t, err)
}
