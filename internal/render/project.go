package render

import (
	"image/color"
	"sort"

	"github.com/annel0/woodland/internal/scene"
	"github.com/annel0/woodland/internal/vec"
)

// ScreenPolygon - многоугольник в пикселях, готовый к заливке
type ScreenPolygon struct {
	X, Y     []float32
	U, V     []float32 // Текстурные координаты 0..1, только при Textured
	Depth    float64   // Глубина центра вдоль взгляда
	Color    color.RGBA
	Textured bool
	Ground   bool
}

// clipFactor - отсечение чуть дальше ближней плоскости, чтобы после
// проекции все вершины гарантированно лежали перед камерой
const clipFactor = 2.0

// Project освещает, отсекает и проецирует многоугольники.
// Результат упорядочен для painter-отрисовки: сначала земля, затем
// остальное, внутри каждого слоя от дальних к ближним.
func Project(polys []Polygon, cam *scene.Camera, lights []scene.Light, width, height int) []ScreenPolygon {
	vp := cam.ViewProjection()
	forward := cam.Target.Sub(cam.Position).Normalize()
	near := cam.Near * clipFactor

	out := make([]ScreenPolygon, 0, len(polys))
	for _, poly := range polys {
		if poly.Closed && poly.Normal.Dot(cam.Position.Sub(centroid(poly.Points))) <= 0 {
			continue
		}

		pts, uv := clipNear(poly.Points, poly.UV, cam.Position, forward, near)
		if len(pts) < 3 {
			continue
		}

		sp := ScreenPolygon{
			X:        make([]float32, len(pts)),
			Y:        make([]float32, len(pts)),
			Color:    Shade(poly.Color, poly.Normal, lights),
			Textured: poly.Textured && uv != nil,
			Ground:   poly.Ground,
			Depth:    centroid(pts).Sub(cam.Position).Dot(forward),
		}
		if sp.Textured {
			sp.U = make([]float32, len(pts))
			sp.V = make([]float32, len(pts))
		}

		visible := true
		for i, p := range pts {
			pr, ok := scene.Project(vp, p, width, height)
			if !ok {
				visible = false
				break
			}
			sp.X[i], sp.Y[i] = float32(pr.X), float32(pr.Y)
			if sp.Textured {
				sp.U[i], sp.V[i] = float32(uv[i][0]), float32(uv[i][1])
			}
		}
		if !visible || offscreen(sp, width, height) {
			continue
		}
		out = append(out, sp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ground != out[j].Ground {
			return out[i].Ground
		}
		return out[i].Depth > out[j].Depth
	})
	return out
}

// clipNear отсекает многоугольник плоскостью (p - eye)·forward = near
// (Сазерленд - Ходжман), интерполируя текстурные координаты
func clipNear(pts []vec.Vec3Float, uv [][2]float64, eye, forward vec.Vec3Float, near float64) ([]vec.Vec3Float, [][2]float64) {
	dist := func(p vec.Vec3Float) float64 {
		return p.Sub(eye).Dot(forward) - near
	}
	hasUV := len(uv) == len(pts)

	var out []vec.Vec3Float
	var outUV [][2]float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		da, db := dist(a), dist(b)

		if da >= 0 {
			out = append(out, a)
			if hasUV {
				outUV = append(outUV, uv[i])
			}
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, a.Add(b.Sub(a).Mul(t)))
			if hasUV {
				ua, ub := uv[i], uv[(i+1)%len(pts)]
				outUV = append(outUV, [2]float64{ua[0] + (ub[0]-ua[0])*t, ua[1] + (ub[1]-ua[1])*t})
			}
		}
	}
	return out, outUV
}

func offscreen(sp ScreenPolygon, width, height int) bool {
	minX, maxX := sp.X[0], sp.X[0]
	minY, maxY := sp.Y[0], sp.Y[0]
	for i := 1; i < len(sp.X); i++ {
		minX, maxX = min(minX, sp.X[i]), max(maxX, sp.X[i])
		minY, maxY = min(minY, sp.Y[i]), max(maxY, sp.Y[i])
	}
	return maxX < 0 || maxY < 0 || minX > float32(width) || minY > float32(height)
}
