package metrics

import (
	"testing"
	"time"

	"github.com/annel0/woodland/internal/vec"
	"github.com/annel0/woodland/internal/world"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameMetrics_WorldEvents(t *testing.T) {
	gm, err := New("woodland")
	require.NoError(t, err)

	w := world.New(world.DefaultGround(""), nil, world.PlayerSpawn)
	w.SetListener(gm.OnWorldEvent)

	w.PlaceTree(vec.New(0, 0, 0))
	w.PlaceTree(vec.New(1, 0, 0))
	w.RemoveTreeNear(vec.New(0, 0, 0), 0.5)
	w.RemoveTreeNear(vec.New(50, 0, 0), 0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(gm.placed))
	assert.Equal(t, 1.0, testutil.ToFloat64(gm.removed))
	assert.Equal(t, 1.0, testutil.ToFloat64(gm.trees))
	assert.Equal(t, int64(1), gm.Snapshot().Trees)
}

func TestGameMetrics_Ticks(t *testing.T) {
	gm, err := New("woodland")
	require.NoError(t, err)

	gm.ObserveTick(time.Millisecond)
	gm.ObserveTick(2 * time.Millisecond)
	gm.BreakMissed()

	assert.Equal(t, 2.0, testutil.ToFloat64(gm.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(gm.breakMisses))
	assert.Equal(t, uint64(2), gm.Snapshot().Ticks)
	assert.Equal(t, 1, testutil.CollectAndCount(gm.tickDuration))

	n, err := testutil.GatherAndCount(gm.Registry(), "woodland_ticks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProcessMetrics_Sample(t *testing.T) {
	gm, err := New("woodland")
	require.NoError(t, err)

	pm, err := NewProcessMetrics("woodland", gm.Registry())
	require.NoError(t, err)

	stats, err := pm.Sample()
	require.NoError(t, err)
	assert.Greater(t, stats.RSSMB, 0.0)
	assert.Greater(t, stats.Goroutines, 0)
	assert.Greater(t, testutil.ToFloat64(pm.rssBytes), 0.0)

	_, err = NewProcessMetrics("woodland", gm.Registry())
	assert.Error(t, err, "повторная регистрация должна завершаться ошибкой")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "42с", FormatUptime(42*time.Second))
	assert.Equal(t, "3м 5с", FormatUptime(3*time.Minute+5*time.Second))
	assert.Equal(t, "2ч 0м 1с", FormatUptime(2*time.Hour+time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", FormatUptime(25*time.Hour))
}
