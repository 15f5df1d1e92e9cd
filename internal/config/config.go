// Package config loads battle settings from an optional battle.yaml and
// SWARM_* environment variables on top of the stock defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/spf13/viper"
)

// Load sets default values and reads battle.yaml from configDir if present.
// A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	d := battle.DefaultConfig()

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("battle.unitsPerFaction", d.UnitsPerFaction)
	viper.SetDefault("battle.maxHealth", d.MaxHealth)
	viper.SetDefault("battle.unitRadius", d.UnitRadius)
	viper.SetDefault("battle.unitSpeed", d.UnitSpeed)
	viper.SetDefault("battle.reloadTicks", d.ReloadTicks)
	viper.SetDefault("battle.firstReload", d.FirstReload)
	viper.SetDefault("battle.workers", d.Workers)

	viper.SetDefault("rocket.speed", d.RocketSpeed)
	viper.SetDefault("rocket.radius", d.RocketRadius)
	viper.SetDefault("rocket.damage", d.RocketDamage)

	viper.SetDefault("effects.explosionTicks", d.ExplosionTicks)
	viper.SetDefault("effects.smokeTicks", d.SmokeTicks)

	viper.SetDefault("grid.width", d.GridWidth)
	viper.SetDefault("grid.height", d.GridHeight)
	viper.SetDefault("grid.cell", d.GridCell)
	viper.SetDefault("grid.originX", d.GridOriginX)
	viper.SetDefault("grid.originY", d.GridOriginY)

	z := d.Zones[0]
	viper.SetDefault("zones.enabled", true)
	viper.SetDefault("zones.damage", z.Damage)
	viper.SetDefault("zones.period", z.Period)
	viper.SetDefault("zones.active", z.ActiveTicks)

	viper.SetDefault("benchmark.frames", battle.DefaultBenchmarkFrames)
	viper.SetDefault("benchmark.referenceMs", battle.DefaultReference.Milliseconds())

	viper.SetDefault("report.window", 600)

	viper.SetDefault("display.simSpeed", 1)
	viper.SetDefault("sound.enabled", true)

	viper.SetEnvPrefix("SWARM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("battle")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Battle assembles a validated battle.Config from the loaded settings.
func Battle() (battle.Config, error) {
	cfg := battle.DefaultConfig()

	cfg.UnitsPerFaction = viper.GetInt("battle.unitsPerFaction")
	cfg.MaxHealth = viper.GetInt("battle.maxHealth")
	cfg.UnitRadius = viper.GetFloat64("battle.unitRadius")
	cfg.UnitSpeed = viper.GetFloat64("battle.unitSpeed")
	cfg.ReloadTicks = viper.GetInt("battle.reloadTicks")
	cfg.FirstReload = viper.GetInt("battle.firstReload")
	cfg.Workers = viper.GetInt("battle.workers")

	cfg.RocketSpeed = viper.GetFloat64("rocket.speed")
	cfg.RocketRadius = viper.GetFloat64("rocket.radius")
	cfg.RocketDamage = viper.GetInt("rocket.damage")

	cfg.ExplosionTicks = viper.GetInt("effects.explosionTicks")
	cfg.SmokeTicks = viper.GetInt("effects.smokeTicks")

	cfg.GridWidth = viper.GetInt("grid.width")
	cfg.GridHeight = viper.GetInt("grid.height")
	cfg.GridCell = viper.GetInt("grid.cell")
	cfg.GridOriginX = viper.GetInt("grid.originX")
	cfg.GridOriginY = viper.GetInt("grid.originY")

	if !viper.GetBool("zones.enabled") {
		cfg.Zones = nil
	}
	for i := range cfg.Zones {
		z := &cfg.Zones[i]
		*z = battle.NewZone(z.Area.Min, z.Area.Max.Sub(z.Area.Min),
			viper.GetInt("zones.damage"), viper.GetInt("zones.period"), viper.GetInt("zones.active"))
	}

	if err := cfg.Validate(); err != nil {
		return battle.Config{}, fmt.Errorf("battle config: %w", err)
	}
	return cfg, nil
}

// Benchmark returns the frame budget and reference duration.
func Benchmark() (int, time.Duration) {
	return viper.GetInt("benchmark.frames"), time.Duration(viper.GetInt64("benchmark.referenceMs")) * time.Millisecond
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
