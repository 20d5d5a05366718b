package posy

import (
	"fmt"
	"time"
)

// debugStats holds per-surface timing and draw metrics.
// Timings are only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	triangles    int
	culled       int
	drawCalls    int
}

// DrawStats is a snapshot of the last drawn surface's counters.
type DrawStats struct {
	Commands  int
	Triangles int
	Culled    int
	DrawCalls int
}

// LastDrawStats returns the counters of the most recently drawn surface.
func (s *Scene) LastDrawStats() DrawStats {
	return DrawStats{
		Commands:  len(s.commands),
		Triangles: s.stats.triangles,
		Culled:    s.stats.culled,
		DrawCalls: s.stats.drawCalls,
	}
}

// debugLog prints timing and draw stats through the package logger.
func (s *Scene) debugLog(surface string, stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	logf("%s traverse: %v | sort: %v | submit: %v | total: %v",
		surface, stats.traverseTime, stats.sortTime, stats.submitTime, total)
	logf("%s commands: %d | triangles: %d | culled: %d | draw calls: %d",
		surface, stats.commandCount, stats.triangles, stats.culled, stats.drawCalls)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("posy debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth above which AddChild logs a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugMaxChildCount is the child count above which AddChild logs a warning.
// Particle layers are the only nodes expected to come close.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logf("warning: node %q has %d children (threshold %d)",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
