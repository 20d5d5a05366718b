package ecs

import (
	"github.com/phanxgames/posy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for pointer interactions
// on nodes that carry an EntityID.
var InteractionEventType = events.NewEventType[posy.InteractionEvent]()

// CollectEventType is the Donburi event type for accepted bouquet
// collections. Duplicate gathers never publish.
var CollectEventType = events.NewEventType[posy.CollectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued and delivered by ProcessEvents on their event type.
func NewDonburiStore(world donburi.World) posy.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event posy.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitCollect(event posy.CollectEvent) {
	CollectEventType.Publish(s.world, event)
}
