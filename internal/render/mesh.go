// Package render переводит кадр сцены в плоские многоугольники для
// painter-отрисовки: тесселяция примитивов, освещение, отсечение по ближней
// плоскости и проекция на экран. Пакет не зависит от графической библиотеки.
package render

import (
	"math"

	"github.com/annel0/woodland/internal/scene"
	"github.com/annel0/woodland/internal/vec"
)

// Количество сегментов для круглых примитивов
const (
	CylinderSegments = 8
	SphereRings      = 5
	SphereSegments   = 8
)

// Polygon - выпуклый многоугольник в мировых координатах
type Polygon struct {
	Points []vec.Vec3Float
	UV     [][2]float64 // Только для текстурированных, по точке на вершину
	Normal vec.Vec3Float
	Color  scene.Color

	Textured bool // Рисуется текстурой земли
	Ground   bool // Слой земли: рисуется раньше остальных
	Closed   bool // Часть замкнутого тела: задние грани отбрасываются
}

// Tessellate разбивает примитивы кадра на многоугольники
func Tessellate(f *scene.Frame) []Polygon {
	var out []Polygon
	for _, p := range f.Primitives {
		switch p.Kind {
		case scene.KindPlane:
			out = append(out, plane(p)...)
		case scene.KindCone:
			out = append(out, cone(p)...)
		case scene.KindCylinder:
			out = append(out, cylinder(p)...)
		case scene.KindSphere:
			out = append(out, sphere(p)...)
		case scene.KindBox:
			out = append(out, box(p)...)
		}
	}
	return out
}

// plane - квадрат земли, разбитый на TextureRepeat x TextureRepeat ячеек.
// Каждая ячейка несет полную текстуру: так повторяется текстура.
func plane(p scene.Primitive) []Polygon {
	n := p.TextureRepeat
	if n <= 0 {
		n = 1
	}
	cw := p.Width / float64(n)
	cd := p.Depth / float64(n)
	x0 := p.Position.X - p.Width/2
	z0 := p.Position.Z - p.Depth/2
	y := p.Position.Y
	up := vec.New(0, 1, 0)

	out := make([]Polygon, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ax, az := x0+float64(i)*cw, z0+float64(j)*cd
			out = append(out, Polygon{
				Points: []vec.Vec3Float{
					vec.New(ax, y, az),
					vec.New(ax+cw, y, az),
					vec.New(ax+cw, y, az+cd),
					vec.New(ax, y, az+cd),
				},
				UV:       [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
				Normal:   up,
				Color:    p.Color,
				Textured: p.TexturePath != "",
				Ground:   true,
			})
		}
	}
	return out
}

// ring возвращает точки окружности радиуса r на высоте y
func ring(c vec.Vec3Float, r, y float64, segments int, phase float64) []vec.Vec3Float {
	pts := make([]vec.Vec3Float, segments)
	for i := 0; i < segments; i++ {
		a := phase + 2*math.Pi*float64(i)/float64(segments)
		pts[i] = vec.New(c.X+r*math.Sin(a), y, c.Z+r*math.Cos(a))
	}
	return pts
}

// cone - боковые треугольники пирамиды; основание стоит на земле и не видно
func cone(p scene.Primitive) []Polygon {
	sides := p.Sides
	if sides < 3 {
		sides = 3
	}
	base := ring(p.Position, p.Radius, p.Position.Y-p.Height/2, sides, 0)
	apex := vec.New(p.Position.X, p.Position.Y+p.Height/2, p.Position.Z)

	out := make([]Polygon, 0, sides)
	for i := 0; i < sides; i++ {
		a, b := base[i], base[(i+1)%sides]
		out = append(out, closedPolygon([]vec.Vec3Float{a, b, apex}, p.Position, p.Color))
	}
	return out
}

// cylinder - боковые грани и верхняя крышка
func cylinder(p scene.Primitive) []Polygon {
	bottom := ring(p.Position, p.Radius, p.Position.Y-p.Height/2, CylinderSegments, 0)
	top := ring(p.Position, p.Radius, p.Position.Y+p.Height/2, CylinderSegments, 0)

	out := make([]Polygon, 0, CylinderSegments+1)
	for i := 0; i < CylinderSegments; i++ {
		j := (i + 1) % CylinderSegments
		out = append(out, closedPolygon([]vec.Vec3Float{bottom[i], bottom[j], top[j], top[i]}, p.Position, p.Color))
	}
	out = append(out, closedPolygon(top, p.Position, p.Color))
	return out
}

// sphere - UV-сфера из четырехугольников (треугольники у полюсов)
func sphere(p scene.Primitive) []Polygon {
	rings := make([][]vec.Vec3Float, SphereRings+1)
	for i := 0; i <= SphereRings; i++ {
		theta := math.Pi * float64(i) / float64(SphereRings)
		y := p.Position.Y + p.Radius*math.Cos(theta)
		rings[i] = ring(p.Position, p.Radius*math.Sin(theta), y, SphereSegments, 0)
	}

	out := make([]Polygon, 0, SphereRings*SphereSegments)
	for i := 0; i < SphereRings; i++ {
		for j := 0; j < SphereSegments; j++ {
			k := (j + 1) % SphereSegments
			pts := []vec.Vec3Float{rings[i][j], rings[i][k], rings[i+1][k], rings[i+1][j]}
			switch i {
			case 0:
				pts = []vec.Vec3Float{rings[0][0], rings[1][k], rings[1][j]}
			case SphereRings - 1:
				pts = pts[:3]
			}
			out = append(out, closedPolygon(pts, p.Position, p.Color))
		}
	}
	return out
}

// box - шесть граней параллелепипеда
func box(p scene.Primitive) []Polygon {
	c := p.Position
	hx, hy, hz := p.Width/2, p.Height/2, p.Depth/2
	v := func(sx, sy, sz float64) vec.Vec3Float {
		return vec.New(c.X+sx*hx, c.Y+sy*hy, c.Z+sz*hz)
	}

	faces := [][]vec.Vec3Float{
		{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)},     // +Z
		{v(1, -1, -1), v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1)}, // -Z
		{v(1, -1, 1), v(1, -1, -1), v(1, 1, -1), v(1, 1, 1)},     // +X
		{v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1)}, // -X
		{v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1), v(-1, 1, -1)},     // +Y
		{v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)}, // -Y
	}

	out := make([]Polygon, 0, len(faces))
	for _, f := range faces {
		out = append(out, closedPolygon(f, c, p.Color))
	}
	return out
}

// closedPolygon считает внешнюю нормаль грани относительно центра тела
func closedPolygon(pts []vec.Vec3Float, center vec.Vec3Float, c scene.Color) Polygon {
	n := faceNormal(pts)
	if n.Dot(centroid(pts).Sub(center)) < 0 {
		n = n.Mul(-1)
	}
	return Polygon{Points: pts, Normal: n, Color: c, Closed: true}
}

// faceNormal - нормаль по методу Ньюэлла, устойчива к вырожденным вершинам
func faceNormal(pts []vec.Vec3Float) vec.Vec3Float {
	var n vec.Vec3Float
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

func centroid(pts []vec.Vec3Float) vec.Vec3Float {
	var c vec.Vec3Float
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}
