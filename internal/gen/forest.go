package gen

import (
	"math"
	"math/rand"

	"github.com/annel0/woodland/internal/vec"
	"github.com/annel0/woodland/internal/world"
)

// mountainMargin - запас от подножия горы, где деревья не растут
const mountainMargin = 2.0

// ForestGenerator рассаживает деревья по сетке, отбирая узлы по шуму Перлина.
// Результат полностью определяется параметрами: один и тот же сид дает
// тот же лес.
type ForestGenerator struct {
	Seed       int64
	Extent     float64 // Половина стороны квадрата рассадки
	Spacing    float64 // Шаг сетки
	Threshold  float64 // Порог шума
	Clearing   float64 // Радиус поляны вокруг Center
	Center     vec.Vec3Float
	NoiseScale float64
}

// NewForestGenerator создаёт генератор с масштабом шума по умолчанию
func NewForestGenerator(seed int64, extent, spacing, threshold, clearing float64) *ForestGenerator {
	return &ForestGenerator{
		Seed:       seed,
		Extent:     extent,
		Spacing:    spacing,
		Threshold:  threshold,
		Clearing:   clearing,
		Center:     world.PlayerSpawn,
		NoiseScale: 0.05,
	}
}

// Positions возвращает точки (x, z) для новых деревьев в порядке обхода сетки.
// Узлы внутри поляны и у подножия гор пропускаются.
func (g *ForestGenerator) Positions(mountains []world.Mountain) [][2]float64 {
	if g.Spacing <= 0 || g.Extent <= 0 {
		return nil
	}

	noise := NewNoise(g.Seed)
	// Отдельный генератор для смещений, чтобы деревья не стояли ровной сеткой
	rng := rand.New(rand.NewSource(g.Seed))
	jitter := g.Spacing / 3

	var out [][2]float64
	for z := -g.Extent; z <= g.Extent; z += g.Spacing {
		for x := -g.Extent; x <= g.Extent; x += g.Spacing {
			dx := (rng.Float64()*2 - 1) * jitter
			dz := (rng.Float64()*2 - 1) * jitter

			if noise.At(x*g.NoiseScale, z*g.NoiseScale) < g.Threshold {
				continue
			}

			px, pz := x+dx, z+dz
			if math.Hypot(px-g.Center.X, pz-g.Center.Z) < g.Clearing {
				continue
			}
			if nearMountain(px, pz, mountains) {
				continue
			}
			out = append(out, [2]float64{px, pz})
		}
	}
	return out
}

// Plant сажает сгенерированные деревья в мир. Возвращает количество посаженных.
func (g *ForestGenerator) Plant(w *world.World) int {
	positions := g.Positions(w.Mountains())
	for _, p := range positions {
		w.PlaceTree(world.TreeAt(p[0], p[1]))
	}
	return len(positions)
}

func nearMountain(x, z float64, mountains []world.Mountain) bool {
	for _, m := range mountains {
		if math.Hypot(x-m.Position.X, z-m.Position.Z) < m.Radius+mountainMargin {
			return true
		}
	}
	return false
}
