package scene

import (
	"github.com/annel0/woodland/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFOV - вертикальный угол обзора в градусах
	DefaultFOV = 75.0
	// DefaultNear - ближняя плоскость отсечения
	DefaultNear = 0.1
	// DefaultFar - дальняя плоскость отсечения
	DefaultFar = 1000.0
)

// DefaultFollowOffset - смещение камеры относительно игрока
var DefaultFollowOffset = vec.Vec3Float{X: 0, Y: 1.5, Z: 5}

// Camera - перспективная камера, жестко следующая за целью.
// Без сглаживания и без столкновений с геометрией.
type Camera struct {
	Position vec.Vec3Float
	Target   vec.Vec3Float
	Up       vec.Vec3Float
	Offset   vec.Vec3Float
	FOV      float64 // Градусы
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera создает камеру для поверхности указанного размера
func NewCamera(width, height int, offset vec.Vec3Float) *Camera {
	c := &Camera{
		Up:     vec.Vec3Float{X: 0, Y: 1, Z: 0},
		Offset: offset,
		FOV:    DefaultFOV,
		Aspect: 1,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
	c.SetAspect(width, height)
	return c
}

// Follow ставит камеру в target + Offset и направляет ее на target
func (c *Camera) Follow(target vec.Vec3Float) {
	c.Position = target.Add(c.Offset)
	c.Target = target
}

// SetAspect пересчитывает соотношение сторон. Нулевая высота игнорируется.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// View возвращает матрицу вида
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Mgl(), c.Target.Mgl(), c.Up.Mgl())
}

// Projection возвращает матрицу перспективной проекции
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection возвращает произведение Projection * View
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Projected - точка на экране
type Projected struct {
	X, Y  float64 // Пиксели, начало в левом верхнем углу
	Depth float64 // Расстояние вдоль оси взгляда
}

// Project переводит мировую точку в пиксели поверхности width x height.
// ok == false, если точка лежит перед ближней плоскостью.
func Project(vp mgl64.Mat4, p vec.Vec3Float, width, height int) (Projected, bool) {
	clip := vp.Mul4x1(p.Mgl().Vec4(1))
	w := clip.W()
	if w < DefaultNear {
		return Projected{}, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	return Projected{
		X:     (ndcX + 1) / 2 * float64(width),
		Y:     (1 - ndcY) / 2 * float64(height),
		Depth: w,
	}, true
}
