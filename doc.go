// Package posy renders an animated greeting for [Ebitengine]: a loading
// heart, a field of floating hearts, and a small game where the viewer taps
// every flower to gather a bouquet that ends in a showcase.
//
// # Quick start
//
// The simplest way to run it is [Run], which opens a window and drives a
// [Session] with the embedded configuration:
//
//	session := posy.NewSession(posy.DefaultConfig(), posy.NewScene())
//	if err := posy.Run(session, posy.RunConfig{}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Session.Update], [Session.Draw] and [Session.Resize] directly. Call
// [Session.SignalLoaded] once your first frame is on screen.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes live on a [Surface], which pairs
// a tree with a [Camera] and a viewport. Perspective cameras project 3D
// meshes, sprites and lines; a screen camera maps X/Y straight to pixels for
// overlay UI. Surfaces draw in creation order and each has its own light.
//
//	sf := scene.NewSurface("ui", posy.NewScreenCamera(), nil)
//	flower := posy.NewSprite("flower", posy.GlyphTulip, 44)
//	flower.SetPosition(120, 200, 0)
//	sf.Root().AddChild(flower)
//
// Sprites are procedural glyphs ([Glyph]); meshes are built with
// [NewHeartMesh], [NewConeMesh] and [NewRingMesh].
//
// # Time
//
// A [Scheduler] is the only clock. Timers, tweens ([Tweener]) and
// procedural motion ([Animator]) all advance from [Session.Update], so tests
// drive a whole session deterministically by calling it with fixed steps.
//
// # Phases
//
// A [PhaseMachine] moves forward through Loading, Entrance, Interactive and
// Showcase. Timers and tweens started in a phase are owned by it and
// stopped when it ends, so nothing from an old phase fires late.
//
// # Input
//
// Mouse and touch are polled from ebiten; [Scene.InjectClick] and friends
// queue synthetic events for automation. Hit testing follows the
// [Node.Interactable] flag down each surface tree.
//
// # ECS integration
//
// Set an [EntityStore] on the scene to forward pointer events and bouquet
// collections. The ecs subpackage provides a Donburi-backed store.
//
// # Configuration
//
// [LoadConfig] and [ParseConfig] read YAML on top of the embedded defaults
// and validate it. A non-zero seed makes every random choice reproducible.
//
// [Ebitengine]: https://ebitengine.org
package posy
