package render

import (
	"image/color"
	"math"

	"github.com/annel0/woodland/internal/scene"
	"github.com/annel0/woodland/internal/vec"
)

// Shade освещает цвет грани с нормалью normal: рассеянный свет плюс
// направленный по Ламберту. Направленный свет светит из Position в начало координат.
func Shade(c scene.Color, normal vec.Vec3Float, lights []scene.Light) color.RGBA {
	var r, g, b float64
	for _, l := range lights {
		k := l.Intensity
		if l.Kind == scene.LightDirectional {
			k *= math.Max(0, normal.Dot(l.Position.Normalize()))
		}
		lc := l.Color.RGBA()
		r += k * float64(lc.R) / 255
		g += k * float64(lc.G) / 255
		b += k * float64(lc.B) / 255
	}

	base := c.RGBA()
	return color.RGBA{
		R: channel(base.R, r),
		G: channel(base.G, g),
		B: channel(base.B, b),
		A: 0xff,
	}
}

func channel(v uint8, k float64) uint8 {
	x := float64(v) * k
	if x > 255 {
		return 255
	}
	return uint8(x)
}
