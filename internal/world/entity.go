package world

import (
	"fmt"

	"github.com/annel0/woodland/internal/vec"
)

// EntityType определяет тип сущности мира
type EntityType uint16

const (
	EntityTypeUnknown  EntityType = 0 // Неизвестный тип
	EntityTypePlayer   EntityType = 1 // Игрок
	EntityTypeTree     EntityType = 2 // Дерево (размещаемое и удаляемое)
	EntityTypeMountain EntityType = 3 // Гора (статическая)
	EntityTypeGround   EntityType = 4 // Плоскость земли (статическая)
)

// String возвращает строковое представление типа сущности
func (t EntityType) String() string {
	switch t {
	case EntityTypePlayer:
		return "player"
	case EntityTypeTree:
		return "tree"
	case EntityTypeMountain:
		return "mountain"
	case EntityTypeGround:
		return "ground"
	default:
		return "unknown"
	}
}

// TreeID - стабильный идентификатор дерева: индекс слота плюс поколение.
// Нулевое значение никогда не выдается хранилищем.
type TreeID struct {
	Index uint32 `json:"index"`
	Gen   uint32 `json:"gen"`
}

// IsZero сообщает, что идентификатор не был выдан
func (id TreeID) IsZero() bool {
	return id.Gen == 0
}

// String возвращает строковое представление идентификатора
func (id TreeID) String() string {
	return fmt.Sprintf("tree#%d.%d", id.Index, id.Gen)
}

// Tree представляет дерево в мире.
// Position - центр ствола; по нему считается близость при удалении.
type Tree struct {
	ID       TreeID        `json:"id"`
	Position vec.Vec3Float `json:"position"`
}
