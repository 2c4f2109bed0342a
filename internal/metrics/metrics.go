package metrics

import (
	"sync/atomic"
	"time"

	"github.com/annel0/woodland/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// GameMetrics собирает метрики симуляции.
//
// Метрики:
// * <ns>_ticks_total - counter
// * <ns>_trees - gauge, текущее количество деревьев
// * <ns>_trees_placed_total / <ns>_trees_removed_total - counter
// * <ns>_break_misses_total - counter, рубка без дерева в радиусе
// * <ns>_tick_duration_seconds - histogram
//
// Все методы безопасны для вызова из любых горутин.
type GameMetrics struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	trees        prometheus.Gauge
	placed       prometheus.Counter
	removed      prometheus.Counter
	breakMisses  prometheus.Counter
	tickDuration prometheus.Histogram

	tickCount atomic.Uint64
	treeCount atomic.Int64
	startTime time.Time
}

// Snapshot - значения для /stats без обращения к Prometheus
type Snapshot struct {
	Ticks  uint64        `json:"ticks"`
	Trees  int64         `json:"trees"`
	Uptime time.Duration `json:"uptime"`
}

// New создает метрики в собственном реестре. В реестр также попадают
// стандартные Go-метрики и метрики процесса (см. process.go).
func New(namespace string) (*GameMetrics, error) {
	gm := &GameMetrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Количество выполненных шагов симуляции.",
		}),
		trees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trees",
			Help:      "Текущее количество деревьев в мире.",
		}),
		placed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trees_placed_total",
			Help:      "Посажено деревьев.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trees_removed_total",
			Help:      "Срублено деревьев.",
		}),
		breakMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "break_misses_total",
			Help:      "Попытки рубки, когда рядом не было дерева.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность шага симуляции вместе с отрисовкой.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.1},
		}),
	}

	cs := []prometheus.Collector{
		gm.ticks, gm.trees, gm.placed, gm.removed, gm.breakMisses, gm.tickDuration,
		collectors.NewGoCollector(),
	}
	for _, c := range cs {
		if err := gm.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return gm, nil
}

// Registry возвращает реестр для /metrics и дополнительных экспортеров
func (gm *GameMetrics) Registry() *prometheus.Registry {
	return gm.registry
}

// ObserveTick учитывает один шаг симуляции
func (gm *GameMetrics) ObserveTick(d time.Duration) {
	gm.ticks.Inc()
	gm.tickCount.Add(1)
	gm.tickDuration.Observe(d.Seconds())
}

// BreakMissed учитывает рубку без результата
func (gm *GameMetrics) BreakMissed() {
	gm.breakMisses.Inc()
}

// OnWorldEvent - слушатель событий мира (world.Listener)
func (gm *GameMetrics) OnWorldEvent(ev world.Event) {
	te, ok := ev.(world.TreeEvent)
	if !ok {
		return
	}

	switch te.EventType {
	case world.EventTypeTreePlaced:
		gm.placed.Inc()
	case world.EventTypeTreeRemoved:
		gm.removed.Inc()
	}
	gm.SetTrees(te.Count)
}

// SetTrees выставляет текущее количество деревьев
func (gm *GameMetrics) SetTrees(n int) {
	gm.trees.Set(float64(n))
	gm.treeCount.Store(int64(n))
}

// Snapshot возвращает текущие значения счетчиков
func (gm *GameMetrics) Snapshot() Snapshot {
	return Snapshot{
		Ticks:  gm.tickCount.Load(),
		Trees:  gm.treeCount.Load(),
		Uptime: time.Since(gm.startTime),
	}
}

// StartTime возвращает момент создания метрик
func (gm *GameMetrics) StartTime() time.Time {
	return gm.startTime
}
