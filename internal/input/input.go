// Package input владеет состоянием управления: удерживаемыми направлениями
// движения и разовыми действиями, которые срабатывают в момент нажатия.
package input

import (
	"errors"
	"fmt"
)

// Key - идентификатор клавиши, как его сообщает источник ввода ("w", "e", ...)
type Key string

// EventKind - тип события клавиатуры
type EventKind uint8

const (
	KeyDown EventKind = iota // Клавиша нажата
	KeyUp                    // Клавиша отпущена
)

// String возвращает строковое представление типа события
func (k EventKind) String() string {
	if k == KeyUp {
		return "up"
	}
	return "down"
}

// KeyEvent - одно событие клавиатуры
type KeyEvent struct {
	Kind EventKind `json:"kind"`
	Key  Key       `json:"key"`
}

// Direction - направление движения
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Action - разовое действие
type Action uint8

const (
	ActionNone      Action = iota
	ActionBreakTree        // Срубить ближайшее дерево
	ActionPlaceTree        // Посадить дерево на месте игрока
)

// String возвращает строковое представление действия
func (a Action) String() string {
	switch a {
	case ActionBreakTree:
		return "break_tree"
	case ActionPlaceTree:
		return "place_tree"
	default:
		return "none"
	}
}

// ControlState - набор удерживаемых направлений. Любая комбинация допустима.
type ControlState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Bindings - раскладка клавиш
type Bindings struct {
	Forward   Key `yaml:"forward"`
	Backward  Key `yaml:"backward"`
	Left      Key `yaml:"left"`
	Right     Key `yaml:"right"`
	BreakTree Key `yaml:"break_tree"`
	PlaceTree Key `yaml:"place_tree"`
}

// DefaultBindings возвращает раскладку WASD + E/R
func DefaultBindings() Bindings {
	return Bindings{
		Forward:   "w",
		Backward:  "s",
		Left:      "a",
		Right:     "d",
		BreakTree: "e",
		PlaceTree: "r",
	}
}

// ErrInvalidBindings - раскладка содержит пустые или повторяющиеся клавиши
var ErrInvalidBindings = errors.New("invalid key bindings")

// Validate проверяет, что все клавиши заданы и различны
func (b Bindings) Validate() error {
	seen := make(map[Key]string, 6)
	for _, kv := range []struct {
		name string
		key  Key
	}{
		{"forward", b.Forward},
		{"backward", b.Backward},
		{"left", b.Left},
		{"right", b.Right},
		{"break_tree", b.BreakTree},
		{"place_tree", b.PlaceTree},
	} {
		if kv.key == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidBindings, kv.name)
		}
		if other, dup := seen[kv.key]; dup {
			return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidBindings, kv.key, other, kv.name)
		}
		seen[kv.key] = kv.name
	}
	return nil
}
