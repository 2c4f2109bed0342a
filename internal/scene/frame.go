package scene

import (
	"image/color"

	"github.com/annel0/woodland/internal/vec"
	"github.com/annel0/woodland/internal/world"
)

// Color - цвет в формате 0xRRGGBB
type Color uint32

// Цвета материалов сцены
const (
	ColorGround   Color = 0xffffff // Цвет земли без текстуры
	ColorMountain Color = 0x8b7765
	ColorTrunk    Color = 0x8b4513
	ColorFoliage  Color = 0x228b22
	ColorPlayer   Color = 0xff0000
	ColorLight    Color = 0xffffff
)

// RGBA преобразует цвет в color.RGBA
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// Kind - вид примитива
type Kind uint8

const (
	KindPlane Kind = iota
	KindCone
	KindCylinder
	KindSphere
	KindBox
)

// Primitive - один рисуемый объект. Используются только поля, нужные виду.
type Primitive struct {
	Kind     Kind
	Entity   world.EntityType
	Position vec.Vec3Float // Центр
	Radius   float64       // Cone, Cylinder, Sphere
	Height   float64       // Cone, Cylinder, Box
	Width    float64       // Plane, Box
	Depth    float64       // Plane, Box
	Sides    int           // Cone
	Color    Color

	TexturePath   string // Plane
	TextureRepeat int    // Plane
}

// LightKind - вид источника света
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light - источник света
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
	Position  vec.Vec3Float // Только для направленного
}

// DefaultLights - рассеянный свет и "солнце"
var DefaultLights = []Light{
	{Kind: LightAmbient, Color: ColorLight, Intensity: 0.5},
	{Kind: LightDirectional, Color: ColorLight, Intensity: 1, Position: vec.Vec3Float{X: 50, Y: 50, Z: 50}},
}

// Frame - все, что поверхность должна нарисовать за один кадр
type Frame struct {
	Tick       uint64
	Primitives []Primitive
	Lights     []Light
}

// BuildFrame собирает кадр из текущего состояния мира
func BuildFrame(w *world.World, tick uint64) *Frame {
	trees := w.Trees()
	mountains := w.Mountains()
	ground := w.Ground()

	prims := make([]Primitive, 0, 2+len(mountains)+2*len(trees))
	prims = append(prims, Primitive{
		Kind:          KindPlane,
		Entity:        world.EntityTypeGround,
		Width:         ground.Size,
		Depth:         ground.Size,
		Color:         ColorGround,
		TexturePath:   ground.TexturePath,
		TextureRepeat: ground.TextureRepeat,
	})

	for _, m := range mountains {
		prims = append(prims, Primitive{
			Kind:     KindCone,
			Entity:   world.EntityTypeMountain,
			Position: m.Position,
			Radius:   m.Radius,
			Height:   m.Height,
			Sides:    m.Sides,
			Color:    ColorMountain,
		})
	}

	for _, t := range trees {
		prims = append(prims,
			Primitive{
				Kind:     KindCylinder,
				Entity:   world.EntityTypeTree,
				Position: t.Position,
				Radius:   world.TrunkRadius,
				Height:   world.TrunkHeight,
				Color:    ColorTrunk,
			},
			Primitive{
				Kind:     KindSphere,
				Entity:   world.EntityTypeTree,
				Position: vec.Vec3Float{X: t.Position.X, Y: t.Position.Y - world.TrunkCenterY + world.FoliageY, Z: t.Position.Z},
				Radius:   world.FoliageRadius,
				Color:    ColorFoliage,
			},
		)
	}

	prims = append(prims, Primitive{
		Kind:     KindBox,
		Entity:   world.EntityTypePlayer,
		Position: w.Player().Position,
		Width:    1,
		Height:   2,
		Depth:    1,
		Color:    ColorPlayer,
	})

	return &Frame{
		Tick:       tick,
		Primitives: prims,
		Lights:     DefaultLights,
	}
}
