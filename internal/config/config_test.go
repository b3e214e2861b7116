package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Len(t, cfg.Targets, 8)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
radar:
  sweep_speed: 90
  rings: 4
  sweep_color: [1, 0, 0, 0.5]
targets:
  - angle: 45
    radius: 0.5
    angular_velocity: 3
log:
  dir: /tmp/ppi-logs
  level: debug
feed:
  source: demo
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(90), cfg.Radar.SweepSpeed)
	assert.Equal(t, 4, cfg.Radar.Rings)
	assert.Equal(t, 12, cfg.Radar.Radials, "unset keys keep defaults")
	assert.Equal(t, RGBA{1, 0, 0, 0.5}, cfg.Radar.SweepColor)
	assert.Equal(t, []TargetConfig{{Angle: 45, Radius: 0.5, AngularVelocity: 3}}, cfg.Targets)
	assert.Equal(t, "/tmp/ppi-logs", cfg.Log.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, FeedDemo, cfg.Feed.Source)
	assert.Equal(t, ":5555", cfg.Overlay.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "radar: [not, a, map"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "radar:\n  rings: -1\nfeed:\n  source: sonar\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "radar.rings")
	assert.ErrorContains(t, err, "feed.source")
}
