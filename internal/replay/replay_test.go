package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/game"
	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/loop"
	"github.com/annel0/woodland/internal/scene"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newGame(t *testing.T, cfg *config.Config) *game.Game {
	t.Helper()
	w, _ := game.NewWorld(cfg.World)
	opts := game.OptionsFromConfig(cfg)
	core, _ := observer.New(zapcore.InfoLevel)
	opts.Logger = logging.NewLoggerWithCore("game", core)

	g, err := game.New(w, &scene.HeadlessSurface{}, opts)
	require.NoError(t, err)
	return g
}

// recordSession играет короткую сессию: рубит, сажает, ходит по диагонали
func recordSession(t *testing.T, cfg *config.Config) (*Journal, *game.Game) {
	t.Helper()
	g := newGame(t, cfg)
	rec := NewRecorder(cfg.World, cfg.Keys)
	g.SetRecorder(rec)

	sched := loop.NewManualScheduler()
	l := loop.New(sched, g.Tick)
	l.Start()

	g.OnKeyDown("a")
	sched.Advance(25)
	g.OnKeyUp("a")
	g.OnKeyDown("s")
	sched.Advance(50)
	g.OnKeyUp("s")
	g.OnKeyDown("e") // рубим дерево (-5, 10)
	g.OnKeyDown("w")
	g.OnKeyDown("d")
	sched.Advance(13)
	g.OnKeyDown("r")
	g.OnKeyDown("r")
	g.OnKeyUp("w")
	g.OnKeyDown("q") // не записывается
	sched.Advance(7)
	g.OnKeyDown("e") // после последнего тика

	return rec.Finish(g.Ticks()), g
}

func TestPlay_ReproducesFinalWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.Forest.Enabled = true
	cfg.World.Forest.Threshold = 0.55

	journal, live := recordSession(t, cfg)
	require.Equal(t, uint64(95), journal.Ticks)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, journal))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, journal.Events(), decoded.Events())

	replayed := newGame(t, cfg)
	ticks := Play(decoded, replayed)

	assert.Equal(t, journal.Ticks, ticks)
	assert.Equal(t, live.Ticks(), replayed.Ticks())
	assert.Equal(t, live.World().Trees(), replayed.World().Trees())
	assert.Equal(t, live.World().Player().Position, replayed.World().Player().Position)
	assert.Equal(t, live.State(), replayed.State())
}

func TestRecorder_GroupsEventsByTick(t *testing.T) {
	rec := NewRecorder(config.Default().World, input.DefaultBindings())
	_, err := uuid.Parse(rec.SessionID())
	require.NoError(t, err)

	rec.Record(0, input.KeyEvent{Kind: input.KeyDown, Key: "w"})
	rec.Record(0, input.KeyEvent{Kind: input.KeyDown, Key: "d"})
	rec.Record(4, input.KeyEvent{Kind: input.KeyUp, Key: "w"})

	j := rec.Finish(10)
	require.Len(t, j.Frames, 2)
	assert.Len(t, j.Frames[0].Events, 2)
	assert.Equal(t, uint64(4), j.Frames[1].Tick)
	assert.Equal(t, 3, j.Events())
	assert.Equal(t, uint64(10), j.Ticks)
	assert.Equal(t, FormatVersion, j.Version)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions", "run.journal.gz")
	rec := NewRecorder(config.Default().World, input.DefaultBindings())
	rec.Record(1, input.KeyEvent{Kind: input.KeyDown, Key: "r"})
	j := rec.Finish(3)

	require.NoError(t, Save(path, j))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, j.SessionID, loaded.SessionID)
	assert.Equal(t, j.Frames, loaded.Frames)
	assert.True(t, j.CreatedAt.Equal(loaded.CreatedAt))

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func encodeRaw(t *testing.T, body string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("not gzip"))
	assert.Error(t, err)

	_, err = Decode(encodeRaw(t, `{"version": 99}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(encodeRaw(t, `{"version": 1, "ticks": 5, "frames": [{"tick": 3}, {"tick": 2}]}`))
	assert.Error(t, err)

	_, err = Decode(encodeRaw(t, `{"version": 1, "ticks": 5, "frames": [{"tick": 6}]}`))
	assert.Error(t, err)

	_, err = Decode(encodeRaw(t, `{"version": 1`))
	assert.Error(t, err)
}

type countingTarget struct {
	events []input.KeyEvent
	ticks  int
	// тик, на котором пришло каждое событие
	at []int
}

func (c *countingTarget) HandleKey(ev input.KeyEvent) bool {
	c.events = append(c.events, ev)
	c.at = append(c.at, c.ticks)
	return true
}

func (c *countingTarget) Tick() { c.ticks++ }

func TestPlayer_DeliversBeforeTick(t *testing.T) {
	j := &Journal{
		Version: FormatVersion,
		Ticks:   3,
		Frames: []Frame{
			{Tick: 0, Events: []input.KeyEvent{{Key: "w"}}},
			{Tick: 2, Events: []input.KeyEvent{{Key: "e"}}},
			{Tick: 3, Events: []input.KeyEvent{{Key: "r"}}},
		},
	}
	target := &countingTarget{}

	assert.Equal(t, uint64(3), Play(j, target))
	assert.Equal(t, 3, target.ticks)
	assert.Equal(t, []int{0, 2, 3}, target.at)
}
