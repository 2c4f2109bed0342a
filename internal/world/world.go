package world

import (
	"github.com/annel0/woodland/internal/vec"
)

// World хранит состояние мира: деревья, горы, землю и игрока.
// Все изменения идут через методы World. Синхронизации нет:
// World принадлежит одному потоку симуляции.
type World struct {
	trees     treeArena
	mountains []Mountain
	ground    Ground
	player    *Player
	listener  Listener
}

// New создает пустой мир (без деревьев) с заданной землей и горами
func New(ground Ground, mountains []Mountain, spawn vec.Vec3Float) *World {
	ms := make([]Mountain, len(mountains))
	copy(ms, mountains)

	return &World{
		mountains: ms,
		ground:    ground,
		player:    NewPlayer(spawn),
	}
}

// SetListener устанавливает получателя событий мира (nil - отключить)
func (w *World) SetListener(l Listener) {
	w.listener = l
}

// PlaceTree сажает дерево в указанной позиции. Всегда успешно,
// пересекающиеся деревья допустимы.
func (w *World) PlaceTree(pos vec.Vec3Float) TreeID {
	id := w.trees.insert(pos)
	w.emit(TreeEvent{
		EventType: EventTypeTreePlaced,
		TreeID:    id,
		Position:  pos,
		Count:     w.trees.len(),
	})
	return id
}

// RemoveTreeNear удаляет первое (по порядку посадки) дерево, расстояние до
// которого строго меньше radius. Если такого нет, мир не меняется.
func (w *World) RemoveTreeNear(pos vec.Vec3Float, radius float64) (Tree, bool) {
	i, ok := w.trees.firstWithin(pos, radius)
	if !ok {
		return Tree{}, false
	}

	tree := w.trees.removeAt(i)
	w.emit(TreeEvent{
		EventType: EventTypeTreeRemoved,
		TreeID:    tree.ID,
		Position:  tree.Position,
		Count:     w.trees.len(),
	})
	return tree, true
}

// Tree возвращает дерево по идентификатору
func (w *World) Tree(id TreeID) (Tree, bool) {
	return w.trees.get(id)
}

// Trees возвращает копию списка деревьев в порядке посадки
func (w *World) Trees() []Tree {
	return w.trees.snapshot()
}

// TreeCount возвращает количество деревьев
func (w *World) TreeCount() int {
	return w.trees.len()
}

// Mountains возвращает копию списка гор
func (w *World) Mountains() []Mountain {
	ms := make([]Mountain, len(w.mountains))
	copy(ms, w.mountains)
	return ms
}

// Ground возвращает описание земли
func (w *World) Ground() Ground {
	return w.ground
}

// Player возвращает игрока
func (w *World) Player() *Player {
	return w.player
}

func (w *World) emit(ev Event) {
	if w.listener != nil {
		w.listener(ev)
	}
}
