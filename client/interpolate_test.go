package client

import (
	"math"
	"testing"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

func statePC(ts int64, players []protocol.PlayerSnapshot, coins []protocol.CoinSnapshot) protocol.State {
	return protocol.State{Type: protocol.MsgState, Timestamp: ts, Players: players, Coins: coins}
}

func findPlayer(t *testing.T, v View, id string) protocol.PlayerSnapshot {
	t.Helper()
	for _, p := range v.Players {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("player %s not in view %+v", id, v)
	return protocol.PlayerSnapshot{}
}

func TestInterpolateLerpsBetweenBrackets(t *testing.T) {
	b := NewBuffer()
	b.Insert(statePC(1000, []protocol.PlayerSnapshot{{ID: "p1", X: 100, Y: 50, Score: 1}}, nil))
	b.Insert(statePC(1100, []protocol.PlayerSnapshot{{ID: "p1", X: 200, Y: 150, Score: 2}}, nil))

	v, ok := Interpolate(b, 1025)
	if !ok {
		t.Fatalf("interpolate returned no view")
	}
	p := findPlayer(t, v, "p1")
	if math.Abs(p.X-125) > 1e-9 || math.Abs(p.Y-75) > 1e-9 {
		t.Fatalf("pos at t=0.25 = (%f, %f), want (125, 75)", p.X, p.Y)
	}
	if p.Score != 2 {
		t.Fatalf("score = %d, want 2 (latest known)", p.Score)
	}
}

// Bracket choice per the render-offset contract: for a frame at wall time T
// the view must come from s0, s1 with s0.ts <= T-offset < s1.ts.
func TestInterpolateBracketProperty(t *testing.T) {
	b := NewBuffer()
	for ts := int64(0); ts <= 1000; ts += 100 {
		x := float64(ts) // position encodes the timestamp
		b.Insert(statePC(ts, []protocol.PlayerSnapshot{{ID: "p1", X: x}}, nil))
	}

	const offset = 350
	for _, wall := range []int64{400, 550, 721, 1350} {
		renderTime := wall - offset
		v, ok := Interpolate(b, renderTime)
		if !ok {
			t.Fatalf("no view at renderTime %d", renderTime)
		}
		p := findPlayer(t, v, "p1")
		// With x == ts on both brackets, lerp yields exactly renderTime.
		if math.Abs(p.X-float64(renderTime)) > 1e-9 {
			t.Fatalf("wall %d: x = %f, want %d", wall, p.X, renderTime)
		}
	}
}

func TestInterpolateFreezesWithoutUpperBracket(t *testing.T) {
	b := NewBuffer()
	b.Insert(statePC(1000, []protocol.PlayerSnapshot{{ID: "p1", X: 100, Y: 100}}, nil))

	v, ok := Interpolate(b, 5000)
	if !ok {
		t.Fatalf("expected frozen view, got none")
	}
	p := findPlayer(t, v, "p1")
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("frozen pos = (%f, %f), want (100, 100) with no extrapolation", p.X, p.Y)
	}
}

func TestInterpolateColdStartHoldsEarliest(t *testing.T) {
	b := NewBuffer()
	b.Insert(statePC(1000, []protocol.PlayerSnapshot{{ID: "p1", X: 42}}, nil))
	b.Insert(statePC(1100, []protocol.PlayerSnapshot{{ID: "p1", X: 99}}, nil))

	v, ok := Interpolate(b, 500)
	if !ok {
		t.Fatalf("expected cold-start view, got none")
	}
	if p := findPlayer(t, v, "p1"); p.X != 42 {
		t.Fatalf("cold-start x = %f, want 42 (earliest snapshot)", p.X)
	}
}

func TestInterpolateEmptyBuffer(t *testing.T) {
	if _, ok := Interpolate(NewBuffer(), 1000); ok {
		t.Fatalf("empty buffer produced a view")
	}
}

func TestInterpolateDiscreteAppearDisappear(t *testing.T) {
	b := NewBuffer()
	b.Insert(statePC(1000,
		[]protocol.PlayerSnapshot{{ID: "p1", X: 10}, {ID: "p2", X: 300}},
		[]protocol.CoinSnapshot{{ID: "coin-0", X: 50, Y: 50}}))
	b.Insert(statePC(1100,
		[]protocol.PlayerSnapshot{{ID: "p1", X: 20}},
		[]protocol.CoinSnapshot{{ID: "coin-1", X: 80, Y: 80}}))

	v, ok := Interpolate(b, 1050)
	if !ok {
		t.Fatalf("no view")
	}

	// p2 left between snapshots: shown at its known position, no lerp.
	if p := findPlayer(t, v, "p2"); p.X != 300 {
		t.Fatalf("departed player x = %f, want 300", p.X)
	}
	// Both coins are known at renderTime; each appears at its own position.
	if len(v.Coins) != 2 {
		t.Fatalf("coin count = %d, want 2", len(v.Coins))
	}
	for _, c := range v.Coins {
		if c.ID == "coin-0" && c.X != 50 {
			t.Fatalf("coin-0 x = %f, want 50", c.X)
		}
		if c.ID == "coin-1" && c.X != 80 {
			t.Fatalf("coin-1 x = %f, want 80", c.X)
		}
	}
}

func TestInterpolateClampsOutsideBracketRatio(t *testing.T) {
	// Degenerate but possible with eviction margins: renderTime exactly at
	// s0 must not step backwards.
	b := NewBuffer()
	b.Insert(statePC(1000, []protocol.PlayerSnapshot{{ID: "p1", X: 0}}, nil))
	b.Insert(statePC(1100, []protocol.PlayerSnapshot{{ID: "p1", X: 100}}, nil))

	v, _ := Interpolate(b, 1000)
	if p := findPlayer(t, v, "p1"); p.X != 0 {
		t.Fatalf("x at t=0 = %f, want 0", p.X)
	}
}
