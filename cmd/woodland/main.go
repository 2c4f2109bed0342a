package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/woodland/internal/api"
	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/eventbus"
	"github.com/annel0/woodland/internal/game"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/loop"
	"github.com/annel0/woodland/internal/metrics"
	"github.com/annel0/woodland/internal/observability"
	"github.com/annel0/woodland/internal/render/ebitenview"
	"github.com/annel0/woodland/internal/replay"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или WOODLAND_CONFIG)")
	recordPath := flag.String("record", "", "записать ввод сессии в журнал")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *recordPath != "" {
		cfg.Replay.RecordPath = *recordPath
	}

	// Инициализируем систему логирования
	logging.Configure(cfg.LoggingOptions())
	if err := logging.InitDefaultLogger("woodland"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("👋 Woodland остановлен")
}

func run(cfg *config.Config) error {
	logging.Info("🌲 Запуск Woodland %dx%d @%d FPS", cfg.Window.Width, cfg.Window.Height, cfg.Window.GetFPS())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТЕЛЕМЕТРИЯ И МЕТРИКИ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки телеметрии: %v", err)
		}
	}()

	gameMetrics, err := metrics.New("woodland")
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	processMetrics, err := metrics.NewProcessMetrics("woodland", gameMetrics.Registry())
	if err != nil {
		return fmt.Errorf("init process metrics: %w", err)
	}
	go processMetrics.Run(ctx, 5*time.Second, func(err error) {
		logging.Debug("Метрики процесса не сняты: %v", err)
	})

	// === ШИНА СОБЫТИЙ ===
	bus, err := eventbus.NewMemoryBus(256, eventbus.DefaultWorkers)
	if err != nil {
		return fmt.Errorf("init event bus: %w", err)
	}
	defer bus.Close()

	if _, err := eventbus.StartLoggingListener(bus, logging.GetComponentLogger("eventbus")); err != nil {
		return fmt.Errorf("subscribe event logger: %w", err)
	}
	exporter, err := eventbus.NewMetricsExporter(bus, gameMetrics.Registry())
	if err != nil {
		return fmt.Errorf("init event bus metrics: %w", err)
	}
	exporter.Start(5 * time.Second)
	defer exporter.Stop()

	// === ДИАГНОСТИКА ===
	if addr := cfg.Metrics.GetMetricsAddr(); addr != "" {
		diag, err := api.NewServer(api.Config{
			Addr:    addr,
			Service: cfg.Telemetry.ServiceName,
			Game:    gameMetrics,
			Process: processMetrics,
			Logger:  logging.GetComponentLogger("api"),
		})
		if err != nil {
			return fmt.Errorf("init diagnostics: %w", err)
		}
		go func() {
			if err := diag.Start(); err != nil {
				logging.Error("❌ %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = diag.Shutdown(shutdownCtx)
		}()
	}

	// === МИР И ИГРА ===
	w, planted := game.NewWorld(cfg.World)
	if planted > 0 {
		logging.GetWorldLogger().Info("🌲 Лес сгенерирован: %d деревьев (seed=%d)", planted, cfg.World.Forest.Seed)
	}

	view := ebitenview.New(cfg.Window.Width, cfg.Window.Height, logging.GetRenderLogger())

	opts := game.OptionsFromConfig(cfg)
	opts.Metrics = gameMetrics
	opts.Bus = bus
	opts.Logger = logging.GetGameLogger()

	g, err := game.New(w, view, opts)
	if err != nil {
		return fmt.Errorf("init game: %w", err)
	}
	view.Attach(g)

	var recorder *replay.Recorder
	if cfg.Replay.RecordPath != "" {
		recorder = replay.NewRecorder(cfg.World, cfg.Keys)
		g.SetRecorder(recorder)
		logging.Info("⏺ Запись ввода в %s (сессия %s)", cfg.Replay.RecordPath, recorder.SessionID())
	}

	loop.New(view, g.Tick).Start()

	go func() {
		<-ctx.Done()
		view.Close()
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.GetFPS())

	logging.Info("✅ Мир готов: %d деревьев, управление WASD, E - срубить, R - посадить, Esc - выход", w.TreeCount())
	if err := ebiten.RunGame(view); err != nil && !errors.Is(err, ebitenview.ErrQuit) {
		return fmt.Errorf("run window: %w", err)
	}
	logging.Info("Выполнено тиков: %d, деревьев: %d", g.Ticks(), w.TreeCount())

	if recorder != nil {
		journal := recorder.Finish(g.Ticks())
		if err := replay.Save(cfg.Replay.RecordPath, journal); err != nil {
			return fmt.Errorf("save journal: %w", err)
		}
		logging.Info("💾 Журнал сохранен: %s (%d событий, %d тиков)", cfg.Replay.RecordPath, journal.Events(), journal.Ticks)
	}
	return nil
}
