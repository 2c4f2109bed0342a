package replay

import (
	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/loop"
)

// Target - игра, в которую воспроизводится журнал
type Target interface {
	HandleKey(ev input.KeyEvent) bool
	Tick()
}

// Player подает события журнала в Target перед соответствующими тиками
type Player struct {
	journal *Journal
	target  Target
	next    int // индекс следующего кадра
	tick    uint64
}

// NewPlayer создает проигрыватель журнала
func NewPlayer(j *Journal, t Target) *Player {
	return &Player{journal: j, target: t}
}

// Step подает события текущего тика и выполняет тик.
// Возвращает false, когда все тики журнала выполнены.
func (p *Player) Step() bool {
	if p.Done() {
		return false
	}
	p.deliver(p.tick)
	p.target.Tick()
	p.tick++
	return true
}

// Done сообщает, выполнены ли все тики журнала
func (p *Player) Done() bool {
	return p.tick >= p.journal.Ticks
}

// Ticks возвращает количество выполненных тиков
func (p *Player) Ticks() uint64 {
	return p.tick
}

// Finish подает события, пришедшие после последнего тика
func (p *Player) Finish() {
	p.deliver(p.tick)
}

func (p *Player) deliver(tick uint64) {
	frames := p.journal.Frames
	for p.next < len(frames) && frames[p.next].Tick <= tick {
		for _, ev := range frames[p.next].Events {
			p.target.HandleKey(ev)
		}
		p.next++
	}
}

// Play воспроизводит журнал целиком через ручной планировщик.
// Возвращает количество выполненных тиков.
func Play(j *Journal, t Target) uint64 {
	p := NewPlayer(j, t)
	sched := loop.NewManualScheduler()
	l := loop.New(sched, func() { p.Step() })
	l.Start()

	for !p.Done() && sched.Step() {
	}
	p.Finish()
	return p.Ticks()
}
