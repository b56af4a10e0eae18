package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amida/internal/ladder"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Generator.LevelsPerColumn)
	assert.Equal(t, 0.55, cfg.Generator.Density)
	assert.True(t, cfg.Generator.AutoDensity)
	assert.Equal(t, 4.0, cfg.Generator.RungsPerPair)
	assert.Equal(t, 50, cfg.Limits.MaxColumns)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestDefault_PolicyMatchesLadderDefaults(t *testing.T) {
	assert.Equal(t, ladder.DefaultPolicy(), Default().Policy())
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amida.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  max_columns: 20\n"), 0644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Limits.MaxColumns)
	assert.Equal(t, 150, cfg.Limits.MaxLevels, "unset fields keep defaults")
}

func TestLoad_ExplicitPathWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yaml")
	flagPath := filepath.Join(dir, "flag.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("server:\n  addr: \":1\"\n"), 0644))
	require.NoError(t, os.WriteFile(flagPath, []byte("server:\n  addr: \":2\"\n"), 0644))
	t.Setenv(EnvConfigPath, envPath)

	cfg, err := Load(flagPath)
	require.NoError(t, err)
	assert.Equal(t, ":2", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
generator:
  levels_per_column: 4
  start_gap: 1
  auto_density: false
  rungs_per_pair: 3
  density: 0.4
  win_label: WIN
  lose_label: LOSE
limits:
  max_columns: 10
  max_levels: 40
server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 3s
log:
  level: debug
  format: json
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, ladder.Policy{LevelsPerColumn: 4, StartGap: 1, RungsPerPair: 3, WinLabel: "WIN", LoseLabel: "LOSE"}, cfg.Policy())
	assert.Equal(t, 0.4, cfg.Generator.Density)
	assert.Equal(t, 10, cfg.Limits.MaxColumns)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)

	timeout, err := cfg.ShutdownTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "generator:\n  densty: 0.3\n", "failed to parse YAML"},
		{"levels factor", "generator:\n  levels_per_column: 0\n", "levels_per_column"},
		{"negative gap", "generator:\n  start_gap: -1\n", "start_gap"},
		{"density", "generator:\n  density: 1.5\n", "generator.density"},
		{"NaN density", "generator:\n  density: .nan\n", "generator.density"},
		{"zero rungs per pair", "generator:\n  rungs_per_pair: 0\n", "rungs_per_pair"},
		{"NaN rungs per pair", "generator:\n  rungs_per_pair: .nan\n", "rungs_per_pair"},
		{"empty label", "generator:\n  win_label: \" \"\n", "must not be empty"},
		{"same labels", "generator:\n  win_label: x\n  lose_label: x\n", "must differ"},
		{"max columns", "limits:\n  max_columns: 1\n", "max_columns"},
		{"max levels", "limits:\n  max_levels: 0\n", "max_levels"},
		{"addr", "server:\n  addr: \"\"\n", "server.addr"},
		{"timeout", "server:\n  shutdown_timeout: soon\n", "shutdown_timeout"},
		{"negative timeout", "server:\n  shutdown_timeout: -1s\n", "must be positive"},
		{"log level", "log:\n  level: loud\n", "log.level"},
		{"log format", "log:\n  format: xml\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDensityFor(t *testing.T) {
	cfg := Default()
	req := ladder.GenerateRequest{Columns: 3}
	cfg.DensityFor(&req)
	assert.True(t, req.AutoDensity)

	cfg.Generator.AutoDensity = false
	cfg.Generator.Density = 0.3
	req = ladder.GenerateRequest{Columns: 3}
	cfg.DensityFor(&req)
	assert.False(t, req.AutoDensity)
	assert.Equal(t, 0.3, req.RungDensity)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()

	logger := cfg.NewLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	logger = cfg.NewLogger(&buf, true)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	cfg.Log.Format = "json"
	cfg.NewLogger(&buf, false).Info("json line")
	assert.Contains(t, buf.String(), `"msg":"json line"`)
}
