package metrics

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics снимает показатели процесса через gopsutil
type ProcessMetrics struct {
	proc *process.Process

	cpuPercent prometheus.Gauge
	rssBytes   prometheus.Gauge
	goroutines prometheus.Gauge
}

// ProcessStats - последнее снятое значение
type ProcessStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	RSSMB      float64 `json:"rss_mb"`
	HeapMB     float64 `json:"heap_mb"`
	Goroutines int     `json:"goroutines"`
}

// NewProcessMetrics регистрирует метрики текущего процесса в reg
func NewProcessMetrics(namespace string, reg prometheus.Registerer) (*ProcessMetrics, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}

	pm := &ProcessMetrics{
		proc: proc,
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Загрузка CPU процессом в процентах.",
		}),
		rssBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Резидентная память процесса.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_goroutines",
			Help:      "Количество горутин.",
		}),
	}

	for _, c := range []prometheus.Collector{pm.cpuPercent, pm.rssBytes, pm.goroutines} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return pm, nil
}

// Sample снимает показатели и обновляет gauge
func (pm *ProcessMetrics) Sample() (ProcessStats, error) {
	var stats ProcessStats

	cpuPercent, err := pm.proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, берем системную
		percents, sysErr := cpu.Percent(0, false)
		if sysErr != nil || len(percents) == 0 {
			return stats, fmt.Errorf("cpu percent: %w", err)
		}
		cpuPercent = percents[0]
	}
	stats.CPUPercent = cpuPercent

	mem, err := pm.proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("memory info: %w", err)
	}
	stats.RSSMB = float64(mem.RSS) / 1024 / 1024

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.HeapMB = float64(m.HeapAlloc) / 1024 / 1024
	stats.Goroutines = runtime.NumGoroutine()

	pm.cpuPercent.Set(cpuPercent)
	pm.rssBytes.Set(float64(mem.RSS))
	pm.goroutines.Set(float64(stats.Goroutines))
	return stats, nil
}

// Run периодически вызывает Sample до отмены ctx.
// Ошибки передаются в onErr (может быть nil).
func (pm *ProcessMetrics) Run(ctx context.Context, every time.Duration, onErr func(error)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := pm.Sample(); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}

// FormatUptime форматирует длительность работы
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}
