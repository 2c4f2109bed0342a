// Package ebitenview - окно на ebiten: поверхность отображения, источник
// клавиатуры и планировщик кадров для игрового цикла.
package ebitenview

import (
	"errors"
	"image"
	"image/color"
	_ "image/jpeg" // декодеры для текстуры земли
	_ "image/png"
	"sync/atomic"

	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/render"
	"github.com/annel0/woodland/internal/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrQuit возвращается из Update, когда окно закрывают клавишей Escape
var ErrQuit = errors.New("ebitenview: quit")

var skyColor = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}

// Handler - игра, которой view передает ввод и изменение размера
type Handler interface {
	HandleKey(ev input.KeyEvent) bool
	Resize(width, height int)
}

// View реализует ebiten.Game, scene.Surface и loop.Scheduler.
// Все вызовы происходят в потоке ebiten.
type View struct {
	handler Handler
	pending func()

	frame  *scene.Frame
	camera scene.Camera
	width  int
	height int

	texture      *ebiten.Image
	texturePath  string
	textureTried bool
	pixel        *ebiten.Image

	logger *logging.Logger
	quit   atomic.Bool
}

// New создает view. Handler подключается позже через Attach: игре
// нужна готовая поверхность.
func New(width, height int, logger *logging.Logger) *View {
	if logger == nil {
		logger = logging.GetRenderLogger()
	}
	pixel := ebiten.NewImage(3, 3)
	pixel.Fill(color.White)

	return &View{
		width:  width,
		height: height,
		pixel:  pixel.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		logger: logger,
	}
}

// Attach подключает обработчик ввода
func (v *View) Attach(h Handler) {
	v.handler = h
}

// RequestFrame запоминает продолжение цикла; оно выполнится в следующем Update
func (v *View) RequestFrame(cb func()) {
	if v.pending != nil {
		panic("ebitenview: frame already requested")
	}
	v.pending = cb
}

// Render запоминает кадр и камеру для следующего Draw
func (v *View) Render(frame *scene.Frame, cam *scene.Camera) {
	v.frame = frame
	v.camera = *cam
}

// SetOutputSize запоминает размер поверхности
func (v *View) SetOutputSize(width, height int) {
	v.width = width
	v.height = height
}

// Close просит окно закрыться на следующем Update. Безопасен из любой горутины.
func (v *View) Close() {
	v.quit.Store(true)
}

// Update опрашивает клавиатуру и выполняет один тик цикла
func (v *View) Update() error {
	if v.quit.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}

	if v.handler != nil {
		for _, ev := range keyEvents(inputState{}) {
			v.handler.HandleKey(ev)
		}
	}

	if cb := v.pending; cb != nil {
		v.pending = nil
		cb()
	}
	return nil
}

// Draw рисует последний отрендеренный кадр
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	if v.frame == nil {
		return
	}

	tex := v.groundTexture()
	polys := render.Project(render.Tessellate(v.frame), &v.camera, v.frame.Lights, v.width, v.height)
	for _, p := range polys {
		if p.Textured && tex != nil {
			v.fillTextured(screen, p, tex)
			continue
		}
		v.fill(screen, p)
	}
}

// Layout сообщает игре новый размер окна
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		if v.handler != nil {
			v.handler.Resize(outsideWidth, outsideHeight)
		} else {
			v.SetOutputSize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// groundTexture загружает текстуру земли один раз. Ошибка загрузки
// не критична: земля рисуется цветом, в лог пишется только debug.
func (v *View) groundTexture() *ebiten.Image {
	path := ""
	for _, p := range v.frame.Primitives {
		if p.Kind == scene.KindPlane {
			path = p.TexturePath
			break
		}
	}
	if path == "" {
		return nil
	}
	if v.textureTried && path == v.texturePath {
		return v.texture
	}

	v.textureTried = true
	v.texturePath = path
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		v.logger.Debug("Текстура земли %s не загружена: %v", path, err)
		v.texture = nil
		return nil
	}
	v.texture = img
	return img
}

func (v *View) fill(screen *ebiten.Image, p render.ScreenPolygon) {
	vertices, indices := fan(p)
	cr := float32(p.Color.R) / 255
	cg := float32(p.Color.G) / 255
	cb := float32(p.Color.B) / 255
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 1, 1
		vertices[i].ColorR, vertices[i].ColorG, vertices[i].ColorB, vertices[i].ColorA = cr, cg, cb, 1
	}

	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(vertices, indices, v.pixel, op)
}

func (v *View) fillTextured(screen *ebiten.Image, p render.ScreenPolygon, tex *ebiten.Image) {
	vertices, indices := fan(p)
	b := tex.Bounds()
	k := float32(p.Color.R) / 255 // освещение земли без оттенка
	for i := range vertices {
		vertices[i].SrcX = float32(b.Min.X) + p.U[i]*float32(b.Dx())
		vertices[i].SrcY = float32(b.Min.Y) + p.V[i]*float32(b.Dy())
		vertices[i].ColorR, vertices[i].ColorG, vertices[i].ColorB, vertices[i].ColorA = k, k, k, 1
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.Address = ebiten.AddressClampToZero
	screen.DrawTriangles(vertices, indices, tex, op)
}

// fan разбивает выпуклый многоугольник на треугольники веером
func fan(p render.ScreenPolygon) ([]ebiten.Vertex, []uint16) {
	vertices := make([]ebiten.Vertex, len(p.X))
	for i := range p.X {
		vertices[i].DstX = p.X[i]
		vertices[i].DstY = p.Y[i]
	}

	indices := make([]uint16, 0, (len(p.X)-2)*3)
	for i := 2; i < len(p.X); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	return vertices, indices
}
