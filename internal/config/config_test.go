package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	cfg, err := Battle()
	require.NoError(t, err)
	def := battle.DefaultConfig()
	assert.Equal(t, def.UnitsPerFaction, cfg.UnitsPerFaction)
	assert.Equal(t, def.GridCell, cfg.GridCell)
	assert.Equal(t, def.RocketDamage, cfg.RocketDamage)
	assert.Len(t, cfg.Zones, len(def.Zones))
	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, 600, GetInt("report.window"))

	frames, ref := Benchmark()
	assert.Equal(t, battle.DefaultBenchmarkFrames, frames)
	assert.Equal(t, battle.DefaultReference, ref)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `
logLevel: debug
battle:
  unitsPerFaction: 200
  workers: 2
rocket:
  damage: 9
zones:
  period: 60
  active: 10
benchmark:
  frames: 500
  referenceMs: 1000
report:
  window: 120
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle.yaml"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	got, err := Battle()
	require.NoError(t, err)
	assert.Equal(t, 200, got.UnitsPerFaction)
	assert.Equal(t, 2, got.Workers)
	assert.Equal(t, 9, got.RocketDamage)
	require.NotEmpty(t, got.Zones)
	assert.Equal(t, 60, got.Zones[0].Period)
	assert.Equal(t, 10, got.Zones[0].ActiveTicks)
	assert.Equal(t, battle.DefaultConfig().Zones[0].Area, got.Zones[0].Area)
	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 120, GetInt("report.window"))

	frames, ref := Benchmark()
	assert.Equal(t, 500, frames)
	assert.Equal(t, time.Second, ref)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SWARM_BATTLE_WORKERS", "3")
	t.Setenv("SWARM_ZONES_ENABLED", "false")

	require.NoError(t, Load(t.TempDir()))
	got, err := Battle()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Workers)
	assert.Empty(t, got.Zones)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle.yaml"), []byte("battle: [unclosed\n"), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestBattle_RejectsInvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle.yaml"), []byte("grid:\n  cell: 5\n"), 0644))
	require.NoError(t, Load(dir))

	_, err := Battle()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid cell")
}
