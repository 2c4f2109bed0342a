package gen

import (
	"math"
	"testing"

	"github.com/annel0/woodland/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise_Range(t *testing.T) {
	n := NewNoise(42)
	for i := 0; i < 200; i++ {
		v := n.At(float64(i)*0.37, float64(i)*-0.11)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestForestGenerator_Deterministic(t *testing.T) {
	mountains := world.DefaultMountains()

	a := NewForestGenerator(7, 90, 6, 0.5, 12).Positions(mountains)
	b := NewForestGenerator(7, 90, 6, 0.5, 12).Positions(mountains)
	assert.Equal(t, a, b, "одинаковый сид дает одинаковый лес")
}

func TestForestGenerator_RespectsClearingAndMountains(t *testing.T) {
	mountains := world.DefaultMountains()
	g := NewForestGenerator(3, 90, 4, 0.0, 15)

	positions := g.Positions(mountains)
	require.NotEmpty(t, positions, "при нулевом пороге подходит любой узел")

	for _, p := range positions {
		assert.GreaterOrEqual(t, math.Hypot(p[0], p[1]), 15.0, "дерево на поляне: %v", p)
		for _, m := range mountains {
			d := math.Hypot(p[0]-m.Position.X, p[1]-m.Position.Z)
			assert.GreaterOrEqual(t, d, m.Radius+mountainMargin, "дерево у горы: %v", p)
		}
	}
}

func TestForestGenerator_ThresholdAboveOneIsEmpty(t *testing.T) {
	g := NewForestGenerator(3, 90, 4, 1.01, 0)
	assert.Empty(t, g.Positions(nil))
}

func TestForestGenerator_InvalidGrid(t *testing.T) {
	assert.Nil(t, NewForestGenerator(1, 90, 0, 0, 0).Positions(nil))
	assert.Nil(t, NewForestGenerator(1, 0, 5, 0, 0).Positions(nil))
}

func TestForestGenerator_Plant(t *testing.T) {
	w := world.NewDefault("")
	before := w.TreeCount()

	n := NewForestGenerator(11, 40, 8, 0.0, 10).Plant(w)
	require.Greater(t, n, 0)
	assert.Equal(t, before+n, w.TreeCount())

	trees := w.Trees()
	for _, tree := range trees[before:] {
		assert.Equal(t, world.TrunkCenterY, tree.Position.Y)
	}
}
