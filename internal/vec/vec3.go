package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// New создает вектор из трех координат
func New(x, y, z float64) Vec3Float {
	return Vec3Float{X: x, Y: y, Z: z}
}

// FromMgl создает Vec3Float из mgl64.Vec3
func FromMgl(v mgl64.Vec3) Vec3Float {
	return Vec3Float{X: v[0], Y: v[1], Z: v[2]}
}

// Mgl преобразует вектор в mgl64.Vec3 для матричной математики
func (v Vec3Float) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot возвращает скалярное произведение
func (v Vec3Float) Dot(other Vec3Float) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Normalize возвращает единичный вектор того же направления.
// Нулевой вектор возвращается как есть.
func (v Vec3Float) Normalize() Vec3Float {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// DistanceTo возвращает евклидово расстояние до другой точки
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	return v.Sub(other).Length()
}

// Equals проверяет точное равенство векторов
func (v Vec3Float) Equals(other Vec3Float) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// ApproxEqual сравнивает векторы с допуском eps по каждой оси
func (v Vec3Float) ApproxEqual(other Vec3Float, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

// Ground проецирует точку на плоскость земли (y = 0)
func (v Vec3Float) Ground() Vec3Float {
	return Vec3Float{X: v.X, Y: 0, Z: v.Z}
}
