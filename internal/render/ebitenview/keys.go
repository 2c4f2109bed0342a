package ebitenview

import (
	"github.com/annel0/woodland/internal/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Автоповтор нажатой клавиши, в тиках ebiten (60 в секунду)
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// keyBinding - клавиша ebiten и ее имя для игры
type keyBinding struct {
	key  ebiten.Key
	name input.Key
}

// keyOrder - клавиши, которые передаются в игру. Порядок фиксирован:
// события одного кадра всегда приходят в этом порядке, поэтому одновременные
// e и r дают одинаковый результат при каждом запуске.
var keyOrder = []keyBinding{
	{ebiten.KeyA, "a"}, {ebiten.KeyB, "b"}, {ebiten.KeyC, "c"}, {ebiten.KeyD, "d"},
	{ebiten.KeyE, "e"}, {ebiten.KeyF, "f"}, {ebiten.KeyG, "g"}, {ebiten.KeyH, "h"},
	{ebiten.KeyI, "i"}, {ebiten.KeyJ, "j"}, {ebiten.KeyK, "k"}, {ebiten.KeyL, "l"},
	{ebiten.KeyM, "m"}, {ebiten.KeyN, "n"}, {ebiten.KeyO, "o"}, {ebiten.KeyP, "p"},
	{ebiten.KeyQ, "q"}, {ebiten.KeyR, "r"}, {ebiten.KeyS, "s"}, {ebiten.KeyT, "t"},
	{ebiten.KeyU, "u"}, {ebiten.KeyV, "v"}, {ebiten.KeyW, "w"}, {ebiten.KeyX, "x"},
	{ebiten.KeyY, "y"}, {ebiten.KeyZ, "z"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyArrowUp, "arrowup"},
	{ebiten.KeyArrowDown, "arrowdown"},
	{ebiten.KeyArrowLeft, "arrowleft"},
	{ebiten.KeyArrowRight, "arrowright"},
}

// keyState - состояние клавиатуры в текущем кадре
type keyState interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
	Duration(k ebiten.Key) int
}

// inputState читает клавиатуру через inpututil
type inputState struct{}

func (inputState) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (inputState) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (inputState) Duration(k ebiten.Key) int      { return inpututil.KeyPressDuration(k) }

// keyEvents переводит состояние клавиатуры в события в порядке keyOrder
func keyEvents(s keyState) []input.KeyEvent {
	var events []input.KeyEvent
	for _, kb := range keyOrder {
		switch {
		case s.JustPressed(kb.key) || repeats(s.Duration(kb.key)):
			events = append(events, input.KeyEvent{Kind: input.KeyDown, Key: kb.name})
		case s.JustReleased(kb.key):
			events = append(events, input.KeyEvent{Kind: input.KeyUp, Key: kb.name})
		}
	}
	return events
}

// repeats сообщает, срабатывает ли автоповтор для клавиши, удерживаемой d тиков
func repeats(d int) bool {
	return d > repeatDelay && (d-repeatDelay)%repeatInterval == 0
}
