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

	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/game"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/loop"
	"github.com/annel0/woodland/internal/replay"
	"github.com/annel0/woodland/internal/scene"
	"github.com/annel0/woodland/internal/world"
)

const defaultFPS = 60

func main() {
	var (
		journalPath = flag.String("journal", "", "путь к журналу (.journal.gz)")
		command     = flag.String("cmd", "play", "Команда: play, info, events")
		realtime    = flag.Bool("realtime", false, "воспроизводить с частотой -fps вместо максимальной скорости")
		fps         = flag.Int("fps", defaultFPS, "частота тиков для -realtime")
		trees       = flag.Bool("trees", false, "после play вывести все деревья")
	)
	flag.Parse()

	if *journalPath == "" {
		fmt.Println("❌ Не указан -journal")
		flag.Usage()
		os.Exit(1)
	}

	if *realtime && *fps <= 0 {
		fmt.Printf("❌ -fps должен быть положительным, получено %d\n", *fps)
		flag.Usage()
		os.Exit(1)
	}

	logging.Configure(logging.Options{ConsoleLevel: logging.WARN, DisableFile: true})

	journal, err := replay.Load(*journalPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	switch *command {
	case "info":
		showInfo(journal)

	case "events":
		showEvents(journal)

	case "play":
		g, err := newGame(journal)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if *realtime {
			err = playRealtime(journal, g, *fps)
		} else {
			replay.Play(journal, g)
		}
		if err != nil {
			log.Fatalf("❌ Воспроизведение прервано: %v", err)
		}
		showResult(g, *trees)

	default:
		fmt.Printf("❌ Неизвестная команда: %s\n", *command)
		fmt.Println("Доступные команды: play, info, events")
		os.Exit(1)
	}
}

// newGame строит мир и игру с настройками, сохраненными в журнале.
// Журнал мог быть отредактирован вручную, поэтому настройки проверяются
// так же, как конфигурация.
func newGame(j *replay.Journal) (*game.Game, error) {
	if err := config.ValidateWorld(j.World, j.Keys); err != nil {
		return nil, fmt.Errorf("journal %s: %w", j.SessionID, err)
	}
	w, _ := game.NewWorld(j.World)

	opts := game.DefaultOptions()
	opts.Speed = j.World.PlayerSpeed
	opts.BreakRadius = j.World.BreakRadius
	opts.CameraOffset = j.World.CameraOffset
	opts.Bindings = j.Keys
	opts.Logger = logging.GetReplayLogger()

	return game.New(w, &scene.HeadlessSurface{}, opts)
}

// playRealtime воспроизводит журнал через таймерный планировщик
func playRealtime(j *replay.Journal, g *game.Game, fps int) error {
	if fps <= 0 {
		fps = defaultFPS
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	player := replay.NewPlayer(j, g)
	sched := loop.NewTickerScheduler(fps)
	loop.New(sched, func() {
		if !player.Step() {
			cancel()
			return
		}
		if player.Ticks()%uint64(fps) == 0 {
			p := g.World().Player().Position
			fmt.Printf("⏱  тик %d/%d  игрок (%.1f, %.1f)  деревьев %d\n", player.Ticks(), j.Ticks, p.X, p.Z, g.World().TreeCount())
		}
	}).Start()

	err := sched.Run(ctx)
	if !player.Done() {
		return err
	}
	player.Finish()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func showInfo(j *replay.Journal) {
	fmt.Printf("🎬 Сессия %s\n", j.SessionID)
	fmt.Printf("   Версия формата: %d\n", j.Version)
	fmt.Printf("   Записана: %s\n", j.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("   Тиков: %d, событий: %d, кадров с вводом: %d\n", j.Ticks, j.Events(), len(j.Frames))
	fmt.Printf("   Скорость: %.2f, радиус рубки: %.1f\n", j.World.PlayerSpeed, j.World.BreakRadius)
	if j.World.Forest.Enabled {
		fmt.Printf("   Лес: seed=%d, порог %.2f\n", j.World.Forest.Seed, j.World.Forest.Threshold)
	}
}

func showEvents(j *replay.Journal) {
	for _, f := range j.Frames {
		for _, ev := range f.Events {
			fmt.Printf("%8d  %-4s %s\n", f.Tick, ev.Kind, ev.Key)
		}
	}
}

func showResult(g *game.Game, listTrees bool) {
	w := g.World()
	p := w.Player().Position
	fmt.Printf("✅ Воспроизведено тиков: %d\n", g.Ticks())
	fmt.Printf("   Игрок: (%.2f, %.2f, %.2f)\n", p.X, p.Y, p.Z)
	fmt.Printf("   Деревьев: %d\n", w.TreeCount())

	if listTrees {
		for _, t := range w.Trees() {
			printTree(t)
		}
	}
}

func printTree(t world.Tree) {
	fmt.Printf("   🌳 %-8s (%.2f, %.2f, %.2f)\n", t.ID, t.Position.X, t.Position.Y, t.Position.Z)
}
