// Package game связывает мир, управление, камеру и поверхность отображения
// в один шаг симуляции.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/woodland/internal/eventbus"
	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/metrics"
	"github.com/annel0/woodland/internal/observability"
	"github.com/annel0/woodland/internal/scene"
	"github.com/annel0/woodland/internal/vec"
	"github.com/annel0/woodland/internal/world"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultSpeed - смещение игрока за тик по каждой оси
	DefaultSpeed = 0.2
	// DefaultBreakRadius - радиус рубки вокруг игрока
	DefaultBreakRadius = 3.0
)

// KeyRecorder получает каждое обработанное событие клавиатуры вместе
// с номером тика, перед которым оно пришло
type KeyRecorder interface {
	Record(tick uint64, ev input.KeyEvent)
}

// Options - параметры игры
type Options struct {
	Speed        float64
	BreakRadius  float64
	CameraOffset vec.Vec3Float
	Bindings     input.Bindings
	Width        int
	Height       int

	Metrics *metrics.GameMetrics // может быть nil
	Bus     eventbus.EventBus    // может быть nil
	Logger  *logging.Logger      // nil - логгер компонента "game"
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Speed:        DefaultSpeed,
		BreakRadius:  DefaultBreakRadius,
		CameraOffset: scene.DefaultFollowOffset,
		Bindings:     input.DefaultBindings(),
		Width:        1280,
		Height:       720,
	}
}

// Game - единственный владелец состояния симуляции. Все методы вызываются
// из одного потока: обработчики ввода, тики и изменение размера не пересекаются.
type Game struct {
	world      *world.World
	controller *input.Controller
	camera     *scene.Camera
	surface    scene.Surface

	speed       float64
	breakRadius float64
	ticks       uint64

	metrics  *metrics.GameMetrics
	logger   *logging.Logger
	recorder KeyRecorder
	ctx      context.Context
}

// New создает игру над готовым миром
func New(w *world.World, surface scene.Surface, opts Options) (*Game, error) {
	if w == nil || surface == nil {
		return nil, fmt.Errorf("game: world and surface are required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGameLogger()
	}

	g := &Game{
		world:       w,
		camera:      scene.NewCamera(opts.Width, opts.Height, opts.CameraOffset),
		surface:     surface,
		speed:       opts.Speed,
		breakRadius: opts.BreakRadius,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		ctx:         context.Background(),
	}

	controller, err := input.NewController(opts.Bindings, g)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.controller = controller

	w.SetListener(g.worldListener(opts.Bus))
	if g.metrics != nil {
		g.metrics.SetTrees(w.TreeCount())
	}

	surface.SetOutputSize(opts.Width, opts.Height)
	g.camera.Follow(w.Player().Position)
	return g, nil
}

// SetRecorder подключает запись ввода (nil - отключить)
func (g *Game) SetRecorder(r KeyRecorder) {
	g.recorder = r
}

// OnKeyDown обрабатывает нажатие клавиши
func (g *Game) OnKeyDown(key input.Key) bool {
	return g.HandleKey(input.KeyEvent{Kind: input.KeyDown, Key: key})
}

// OnKeyUp обрабатывает отпускание клавиши
func (g *Game) OnKeyUp(key input.Key) bool {
	return g.HandleKey(input.KeyEvent{Kind: input.KeyUp, Key: key})
}

// HandleKey передает событие контроллеру. Нераспознанные клавиши
// игнорируются и не записываются.
func (g *Game) HandleKey(ev input.KeyEvent) bool {
	handled := g.controller.Handle(ev)
	if handled && g.recorder != nil {
		g.recorder.Record(g.ticks, ev)
	}
	return handled
}

// Dispatch выполняет разовое действие в момент нажатия
func (g *Game) Dispatch(action input.Action) {
	player := g.world.Player().Position

	_, span := observability.StartSpan(g.ctx, "game."+action.String(),
		attribute.Int64("tick", int64(g.ticks)),
		attribute.Float64("player.x", player.X),
		attribute.Float64("player.z", player.Z),
	)
	defer span.End()

	switch action {
	case input.ActionBreakTree:
		tree, ok := g.world.RemoveTreeNear(player, g.breakRadius)
		if !ok {
			if g.metrics != nil {
				g.metrics.BreakMissed()
			}
			g.logger.Trace("🪓 Рядом нет деревьев (%.1f, %.1f)", player.X, player.Z)
			return
		}
		span.SetAttributes(attribute.String("tree.id", tree.ID.String()))
		g.logger.Debug("🪓 Срублено дерево %s в (%.1f, %.1f)", tree.ID, tree.Position.X, tree.Position.Z)

	case input.ActionPlaceTree:
		id := g.world.PlaceTree(world.TreeAt(player.X, player.Z))
		span.SetAttributes(attribute.String("tree.id", id.String()))
		g.logger.Debug("🌱 Посажено дерево %s в (%.1f, %.1f)", id, player.X, player.Z)
	}
}

// Tick выполняет один шаг: движение, камера, отрисовка
func (g *Game) Tick() {
	start := time.Now()

	dx, dz := g.velocity(g.controller.State())
	player := g.world.Player()
	player.Move(dx, dz)

	g.camera.Follow(player.Position)
	g.surface.Render(scene.BuildFrame(g.world, g.ticks), g.camera)
	g.ticks++

	if g.metrics != nil {
		g.metrics.ObserveTick(time.Since(start))
	}
}

// velocity переводит удерживаемые направления в смещение за тик.
// Диагональ не нормализуется: по обеим осям полная скорость.
func (g *Game) velocity(s input.ControlState) (dx, dz float64) {
	if s.Backward {
		dz += g.speed
	}
	if s.Forward {
		dz -= g.speed
	}
	if s.Right {
		dx += g.speed
	}
	if s.Left {
		dx -= g.speed
	}
	return dx, dz
}

// Resize меняет соотношение сторон камеры и размер поверхности
func (g *Game) Resize(width, height int) {
	g.camera.SetAspect(width, height)
	g.surface.SetOutputSize(width, height)
}

// World возвращает мир
func (g *Game) World() *world.World {
	return g.world
}

// Camera возвращает камеру
func (g *Game) Camera() *scene.Camera {
	return g.camera
}

// State возвращает текущее состояние управления
func (g *Game) State() input.ControlState {
	return g.controller.State()
}

// Ticks возвращает количество выполненных тиков
func (g *Game) Ticks() uint64 {
	return g.ticks
}
