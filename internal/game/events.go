package game

import (
	"context"
	"encoding/json"

	"github.com/annel0/woodland/internal/eventbus"
	"github.com/annel0/woodland/internal/world"
)

// EventSource - источник событий мира в шине
const EventSource = "world"

// treePayload - полезная нагрузка событий TreePlaced / TreeRemoved
type treePayload struct {
	TreeID string  `json:"tree_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Count  int     `json:"count"`
}

// worldListener раздает события мира метрикам и шине
func (g *Game) worldListener(bus eventbus.EventBus) world.Listener {
	return func(ev world.Event) {
		if g.metrics != nil {
			g.metrics.OnWorldEvent(ev)
		}
		if bus != nil {
			g.publish(bus, ev)
		}
	}
}

// publish отправляет событие в шину без блокировки потока симуляции:
// при переполнении буфера событие с низким приоритетом отбрасывается
func (g *Game) publish(bus eventbus.EventBus, ev world.Event) {
	te, ok := ev.(world.TreeEvent)
	if !ok {
		return
	}

	payload, err := json.Marshal(treePayload{
		TreeID: te.TreeID.String(),
		X:      te.Position.X,
		Y:      te.Position.Y,
		Z:      te.Position.Z,
		Count:  te.Count,
	})
	if err != nil {
		g.logger.Warn("Не удалось сериализовать событие %s: %v", te.EventType, err)
		return
	}

	env := eventbus.NewEnvelope(EventSource, te.EventType.String(), payload)
	env.Priority = 1
	if err := bus.Publish(context.Background(), env); err != nil {
		g.logger.Debug("Событие %s не опубликовано: %v", te.EventType, err)
	}
}
