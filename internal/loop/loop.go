// Package loop реализует игровой цикл поверх внешнего планировщика кадров.
//
// Хост (окно, таймер, тест) предоставляет Scheduler - "выполнить на
// следующем кадре". Loop держит у планировщика ровно одно ожидающее
// продолжение: каждый тик выполняется до конца, и только потом
// запрашивается следующий.
package loop

// Scheduler выполняет callback на следующем кадре хоста
type Scheduler interface {
	RequestFrame(cb func())
}

// Loop - бесконечный цикл тиков
type Loop struct {
	sched   Scheduler
	step    func()
	pending bool
	started bool
	frames  uint64
}

// New создает цикл, который на каждом кадре вызывает step
func New(sched Scheduler, step func()) *Loop {
	return &Loop{sched: sched, step: step}
}

// Start запрашивает первый кадр. Повторный вызов ничего не делает.
func (l *Loop) Start() {
	if l.started {
		return
	}
	l.started = true
	l.request()
}

// Frames возвращает количество выполненных кадров
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Pending сообщает, ждет ли цикл очередного кадра
func (l *Loop) Pending() bool {
	return l.pending
}

func (l *Loop) frame() {
	l.pending = false
	l.step()
	l.frames++
	l.request()
}

func (l *Loop) request() {
	if l.pending {
		return
	}
	l.pending = true
	l.sched.RequestFrame(l.frame)
}
