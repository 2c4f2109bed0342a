package world

import (
	"github.com/annel0/woodland/internal/vec"
)

// EventType определяет тип события мира
type EventType uint8

const (
	EventTypeTreePlaced  EventType = iota // Дерево посажено
	EventTypeTreeRemoved                  // Дерево срублено
)

// String возвращает строковое представление типа события
func (t EventType) String() string {
	switch t {
	case EventTypeTreePlaced:
		return "TreePlaced"
	case EventTypeTreeRemoved:
		return "TreeRemoved"
	default:
		return "Unknown"
	}
}

// Event представляет собой интерфейс для всех событий мира
type Event interface {
	GetType() EventType
}

// TreeEvent представляет событие, связанное с деревом
type TreeEvent struct {
	EventType EventType
	TreeID    TreeID        // Идентификатор дерева
	Position  vec.Vec3Float // Позиция дерева
	Count     int           // Количество деревьев после изменения
}

// GetType возвращает тип события
func (e TreeEvent) GetType() EventType {
	return e.EventType
}

// Listener получает события мира синхронно, сразу после изменения.
// Вызывается в потоке симуляции и не должен блокироваться.
type Listener func(Event)
