// Package ecs bridges posy events into a [Donburi] world.
//
// [NewDonburiStore] returns a [posy.EntityStore] that publishes pointer
// interactions to [InteractionEventType] and accepted bouquet collections to
// [CollectEventType]. Subscribe to them in your ECS systems and drain them
// with ProcessEvents once per frame.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	session.Scene().SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
