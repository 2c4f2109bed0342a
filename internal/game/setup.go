package game

import (
	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/gen"
	"github.com/annel0/woodland/internal/world"
)

// NewWorld строит стартовый мир по конфигурации: девять деревьев, горы
// и, если включено, лес по шуму Перлина. Возвращает мир и число
// сгенерированных деревьев.
func NewWorld(cfg config.WorldConfig) (*world.World, int) {
	w := world.NewDefault(cfg.GroundTexture)

	planted := 0
	if f := cfg.Forest; f.Enabled {
		g := gen.NewForestGenerator(f.Seed, f.Extent, f.Spacing, f.Threshold, f.Clearing)
		planted = g.Plant(w)
	}
	return w, planted
}

// OptionsFromConfig переносит настройки мира и раскладку в Options
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Speed = cfg.World.PlayerSpeed
	opts.BreakRadius = cfg.World.BreakRadius
	opts.CameraOffset = cfg.World.CameraOffset
	opts.Bindings = cfg.Keys
	opts.Width = cfg.Window.Width
	opts.Height = cfg.Window.Height
	return opts
}
