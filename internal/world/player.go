package world

import (
	"github.com/annel0/woodland/internal/vec"
)

// PlayerSpawn - стартовая позиция игрока (над землей)
var PlayerSpawn = vec.Vec3Float{X: 0, Y: 1, Z: 0}

// Player представляет единственного игрока. Живет все время процесса.
type Player struct {
	Position vec.Vec3Float
}

// NewPlayer создает игрока в указанной позиции
func NewPlayer(pos vec.Vec3Float) *Player {
	return &Player{Position: pos}
}

// Move смещает игрока в плоскости XZ; высота не меняется
func (p *Player) Move(dx, dz float64) {
	p.Position.X += dx
	p.Position.Z += dz
}
