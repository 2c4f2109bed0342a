package world

import (
	"github.com/annel0/woodland/internal/vec"
)

// treeSlot - слот арены деревьев
type treeSlot struct {
	pos   vec.Vec3Float
	gen   uint32
	alive bool
}

// treeArena хранит деревья в слотах со списком свободных индексов.
// order сохраняет порядок вставки живых слотов: от него зависит,
// какое дерево будет удалено первым.
type treeArena struct {
	slots []treeSlot
	free  []uint32
	order []uint32
}

// insert занимает слот (свободный или новый) и возвращает его идентификатор
func (a *treeArena) insert(pos vec.Vec3Float) TreeID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, treeSlot{})
	}

	slot := &a.slots[idx]
	slot.gen++
	slot.pos = pos
	slot.alive = true
	a.order = append(a.order, idx)

	return TreeID{Index: idx, Gen: slot.gen}
}

// get возвращает дерево по идентификатору, если оно еще живо
func (a *treeArena) get(id TreeID) (Tree, bool) {
	if id.IsZero() || int(id.Index) >= len(a.slots) {
		return Tree{}, false
	}
	slot := a.slots[id.Index]
	if !slot.alive || slot.gen != id.Gen {
		return Tree{}, false
	}
	return Tree{ID: id, Position: slot.pos}, true
}

// removeAt удаляет дерево, стоящее на позиции i в порядке вставки
func (a *treeArena) removeAt(i int) Tree {
	idx := a.order[i]
	a.order = append(a.order[:i], a.order[i+1:]...)

	slot := &a.slots[idx]
	slot.alive = false
	a.free = append(a.free, idx)

	return Tree{ID: TreeID{Index: idx, Gen: slot.gen}, Position: slot.pos}
}

// firstWithin возвращает позицию (в порядке вставки) первого дерева,
// расстояние до которого строго меньше radius
func (a *treeArena) firstWithin(pos vec.Vec3Float, radius float64) (int, bool) {
	for i, idx := range a.order {
		if pos.DistanceTo(a.slots[idx].pos) < radius {
			return i, true
		}
	}
	return -1, false
}

// snapshot копирует живые деревья в порядке вставки
func (a *treeArena) snapshot() []Tree {
	trees := make([]Tree, 0, len(a.order))
	for _, idx := range a.order {
		slot := a.slots[idx]
		trees = append(trees, Tree{ID: TreeID{Index: idx, Gen: slot.gen}, Position: slot.pos})
	}
	return trees
}

func (a *treeArena) len() int {
	return len(a.order)
}
