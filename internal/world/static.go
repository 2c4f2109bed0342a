package world

import (
	"github.com/annel0/woodland/internal/vec"
)

const (
	// MountainRadius - радиус основания горы
	MountainRadius = 5.0
	// MountainSides - количество граней конуса горы
	MountainSides = 4

	// GroundSize - сторона квадрата земли
	GroundSize = 200.0
	// GroundTextureRepeat - сколько раз текстура повторяется по каждой оси
	GroundTextureRepeat = 20
)

// Mountain - статическая гора. Удаления для гор нет.
type Mountain struct {
	Position vec.Vec3Float // Центр конуса (y = height/2)
	Height   float64
	Radius   float64
	Sides    int
}

// NewMountain создает гору с основанием на земле в точке (x, z)
func NewMountain(x, z, height float64) Mountain {
	return Mountain{
		Position: vec.Vec3Float{X: x, Y: height / 2, Z: z},
		Height:   height,
		Radius:   MountainRadius,
		Sides:    MountainSides,
	}
}

// Ground описывает плоскость земли
type Ground struct {
	Size          float64
	TextureRepeat int
	TexturePath   string // Пустая строка - без текстуры
}

// DefaultGround возвращает землю по умолчанию
func DefaultGround(texturePath string) Ground {
	return Ground{
		Size:          GroundSize,
		TextureRepeat: GroundTextureRepeat,
		TexturePath:   texturePath,
	}
}
