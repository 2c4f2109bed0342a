package world

import (
	"github.com/annel0/woodland/internal/vec"
)

const (
	// TrunkHeight - высота ствола
	TrunkHeight = 5.0
	// TrunkRadius - радиус ствола
	TrunkRadius = 0.5
	// TrunkCenterY - высота центра ствола (позиция дерева)
	TrunkCenterY = TrunkHeight / 2
	// FoliageRadius - радиус кроны
	FoliageRadius = 3.0
	// FoliageY - высота центра кроны
	FoliageY = 6.0
)

// SeedTrees - стартовые деревья (x, z)
var SeedTrees = [][2]float64{
	{-10, -10},
	{15, 5},
	{20, -20},
	{-20, 15},
	{-5, 10},
	{30, -5},
	{25, 25},
	{-15, -25},
	{-30, -30},
}

// DefaultMountains возвращает стартовые горы
func DefaultMountains() []Mountain {
	return []Mountain{
		NewMountain(-50, -50, 30),
		NewMountain(50, -30, 40),
		NewMountain(-70, 50, 20),
		NewMountain(70, 30, 25),
	}
}

// TreeAt возвращает позицию дерева, стоящего на земле в точке (x, z)
func TreeAt(x, z float64) vec.Vec3Float {
	return vec.Vec3Float{X: x, Y: TrunkCenterY, Z: z}
}

// NewDefault создает стартовый мир: земля, четыре горы, девять деревьев, игрок
func NewDefault(texturePath string) *World {
	w := New(DefaultGround(texturePath), DefaultMountains(), PlayerSpawn)
	for _, p := range SeedTrees {
		w.PlaceTree(TreeAt(p[0], p[1]))
	}
	return w
}
