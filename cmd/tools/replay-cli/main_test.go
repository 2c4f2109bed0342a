package main

import (
	"testing"

	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(logging.Options{ConsoleLevel: logging.ERROR, FileLevel: logging.ERROR, DisableFile: true})
}

// shortJournal - два тика, на первом зажата "s"
func shortJournal() *replay.Journal {
	cfg := config.Default()
	rec := replay.NewRecorder(cfg.World, cfg.Keys)
	rec.Record(0, input.KeyEvent{Kind: input.KeyDown, Key: "s"})
	return rec.Finish(2)
}

func TestPlayRealtime_NonPositiveFPS(t *testing.T) {
	quietLogs(t)

	for _, fps := range []int{0, -5} {
		j := shortJournal()
		g, err := newGame(j)
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			require.NoError(t, playRealtime(j, g, fps))
		})
		assert.Equal(t, uint64(2), g.Ticks())
		assert.InDelta(t, 0.4, g.World().Player().Position.Z, 1e-9)
	}
}

func TestNewGame_RejectsInvalidJournalSettings(t *testing.T) {
	quietLogs(t)

	tests := []struct {
		name   string
		mutate func(j *replay.Journal)
	}{
		{name: "нулевой радиус рубки", mutate: func(j *replay.Journal) { j.World.BreakRadius = 0 }},
		{name: "отрицательная скорость", mutate: func(j *replay.Journal) { j.World.PlayerSpeed = -1 }},
		{name: "пустая клавиша", mutate: func(j *replay.Journal) { j.Keys.BreakTree = "" }},
		{name: "дубль клавиши", mutate: func(j *replay.Journal) { j.Keys.PlaceTree = j.Keys.Forward }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := shortJournal()
			tt.mutate(j)
			_, err := newGame(j)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := newGame(shortJournal())
	assert.NoError(t, err)
}
