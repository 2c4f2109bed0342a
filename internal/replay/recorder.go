package replay

import (
	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/input"
)

// Recorder накапливает события ввода. Не потокобезопасен: вызывается
// из потока симуляции.
type Recorder struct {
	journal *Journal
}

// NewRecorder начинает запись сессии с указанными настройками мира и раскладкой
func NewRecorder(world config.WorldConfig, keys input.Bindings) *Recorder {
	return &Recorder{journal: newJournal(world, keys)}
}

// SessionID возвращает идентификатор записываемой сессии
func (r *Recorder) SessionID() string {
	return r.journal.SessionID
}

// Record добавляет событие, пришедшее после tick выполненных тиков
func (r *Recorder) Record(tick uint64, ev input.KeyEvent) {
	frames := r.journal.Frames
	if n := len(frames); n > 0 && frames[n-1].Tick == tick {
		frames[n-1].Events = append(frames[n-1].Events, ev)
		return
	}
	r.journal.Frames = append(frames, Frame{Tick: tick, Events: []input.KeyEvent{ev}})
}

// Finish завершает запись. ticks - сколько тиков выполнено к концу сессии.
func (r *Recorder) Finish(ticks uint64) *Journal {
	r.journal.Ticks = ticks
	return r.journal
}
