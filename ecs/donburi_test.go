package ecs

import (
	"testing"

	"github.com/phanxgames/posy"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []posy.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e posy.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(posy.InteractionEvent{
		Type:     posy.EventPointerDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
	})
	store.EmitEvent(posy.InteractionEvent{
		Type:      posy.EventClick,
		EntityID:  7,
		PointerID: 1,
		Touch:     true,
	})

	// Events are queued until ProcessEvents.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != posy.EventPointerDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	e1 := received[1]
	if e1.Type != posy.EventClick || !e1.Touch || e1.PointerID != 1 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_EmitCollect(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []posy.CollectEvent
	CollectEventType.Subscribe(world, func(w donburi.World, e posy.CollectEvent) {
		received = append(received, e)
	})

	store.EmitCollect(posy.CollectEvent{TargetID: 3, Glyph: posy.GlyphRose, Count: 1, Total: 2})
	store.EmitCollect(posy.CollectEvent{TargetID: 5, Glyph: posy.GlyphTulip, Count: 2, Total: 2, Complete: true})
	CollectEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].TargetID != 3 || received[0].Complete {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Count != 2 || !received[1].Complete || received[1].Glyph != posy.GlyphTulip {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_SceneWiring(t *testing.T) {
	world := donburi.NewWorld()
	scene := posy.NewScene()
	scene.SetInputSource(nil)
	scene.SetEntityStore(NewDonburiStore(world))

	var received []posy.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e posy.InteractionEvent) {
		received = append(received, e)
	})

	sf := scene.NewSurface("ui", posy.NewScreenCamera(), nil)
	scene.Resize(200, 200)
	n := posy.NewSprite("flower", posy.GlyphRose, 40)
	n.SetPosition(100, 100, 0)
	n.Interactable = true
	n.EntityID = 9
	sf.Root().AddChild(n)

	scene.InjectClick(100, 100)
	scene.Update(1.0 / 60)
	scene.Update(1.0 / 60)
	InteractionEventType.ProcessEvents(world)

	var types []posy.EventType
	for _, e := range received {
		if e.EntityID != 9 {
			t.Errorf("unexpected entity %d", e.EntityID)
		}
		types = append(types, e.Type)
	}
	want := []posy.EventType{posy.EventPointerDown, posy.EventClick, posy.EventPointerUp}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
