package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/annel0/woodland/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newBus(t *testing.T, capacity int) EventBus {
	t.Helper()
	bus, err := NewMemoryBus(capacity, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestNewEnvelope(t *testing.T) {
	ev := NewEnvelope("world", "TreePlaced", []byte(`{}`))

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, "world", ev.Source)
	assert.Equal(t, "TreePlaced", ev.EventType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, time.UTC, ev.Timestamp.Location())
}

func TestMemoryBus_DeliversMatchingEvents(t *testing.T) {
	bus := newBus(t, 16)

	var mu sync.Mutex
	var got []string
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"TreeRemoved"}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		got = append(got, ev.EventType)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil)))
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreeRemoved", nil)))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Close())
	stats := bus.Metrics()
	assert.Equal(t, uint64(2), stats.Published)
	assert.Equal(t, uint64(1), stats.Consumed)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := newBus(t, 4)

	calls := make(chan struct{}, 4)
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		calls <- struct{}{}
	})
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil)))
	require.NoError(t, bus.Close())
	assert.Len(t, calls, 0)
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	bus := newBus(t, 1)

	block := make(chan struct{})
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		<-block
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil)))
	}
	assert.Greater(t, bus.Metrics().Dropped, uint64(0))
	close(block)
}

func TestMemoryBus_PublishAfterClose(t *testing.T) {
	bus := newBus(t, 1)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMatchFilter(t *testing.T) {
	ev := &Envelope{EventType: "TreePlaced", Source: "world"}

	assert.True(t, matchFilter(ev, Filter{}))
	assert.True(t, matchFilter(ev, Filter{Types: []string{"TreeRemoved", "TreePlaced"}}))
	assert.False(t, matchFilter(ev, Filter{Types: []string{"TreeRemoved"}}))
	assert.False(t, matchFilter(ev, Filter{Sources: []string{"replay"}}))
}

func TestLoggingListener(t *testing.T) {
	bus := newBus(t, 4)
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerWithCore("eventbus", core)

	_, err := StartLoggingListener(bus, logger)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreeRemoved", []byte(`{"count":3}`))))
	require.NoError(t, bus.Close())

	assert.Equal(t, 1, logs.FilterMessageSnippet("[EventBus]").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet(`{"count":3}`).Len())
}

func TestMetricsExporter_Collect(t *testing.T) {
	bus := newBus(t, 4)
	reg := prometheus.NewRegistry()
	me, err := NewMetricsExporter(bus, reg)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil)))
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("world", "TreePlaced", nil)))

	prev := me.Collect(Stats{})
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published))

	me.Collect(prev)
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published), "повторный сбор не должен удваивать счетчик")

	_, err = NewMetricsExporter(bus, reg)
	assert.Error(t, err, "повторная регистрация в том же реестре - ошибка")
}
