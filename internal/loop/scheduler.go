package loop

import (
	"context"
	"time"
)

// ManualScheduler выполняет кадры только по явному вызову Advance.
// Дает детерминированные, воспроизводимые тики без дисплея.
type ManualScheduler struct {
	pending func()
}

// NewManualScheduler создает ручной планировщик
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame запоминает продолжение. Второе продолжение до выполнения
// первого - ошибка программирования.
func (s *ManualScheduler) RequestFrame(cb func()) {
	if s.pending != nil {
		panic("loop: frame already requested")
	}
	s.pending = cb
}

// Pending сообщает, есть ли ожидающее продолжение
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}

// Step выполняет одно ожидающее продолжение
func (s *ManualScheduler) Step() bool {
	cb := s.pending
	if cb == nil {
		return false
	}
	s.pending = nil
	cb()
	return true
}

// Advance выполняет до n кадров и возвращает, сколько выполнено
func (s *ManualScheduler) Advance(n int) int {
	done := 0
	for done < n && s.Step() {
		done++
	}
	return done
}

// TickerScheduler выполняет кадры с фиксированной частотой в горутине Run
type TickerScheduler struct {
	interval time.Duration
	next     chan func()
}

// NewTickerScheduler создает планировщик с указанной частотой кадров
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{
		interval: time.Second / time.Duration(fps),
		next:     make(chan func(), 1),
	}
}

// RequestFrame ставит продолжение на следующий тик таймера
func (s *TickerScheduler) RequestFrame(cb func()) {
	select {
	case s.next <- cb:
	default:
		panic("loop: frame already requested")
	}
}

// Run выполняет кадры до отмены контекста
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case cb := <-s.next:
				cb()
			default:
			}
		}
	}
}
