package game

import "math"

// Step advances the simulation by one fixed timestep of dt seconds:
// normalize each player's input vector, integrate at PlayerSpeed, clamp to
// the arena.
func Step(s *State, dt float64) {
	s.Tick++

	for _, id := range s.playerIDs() {
		p := s.Players[id]

		vx, vy := 0.0, 0.0
		mag := math.Hypot(p.InputX, p.InputY)
		if mag > 0 {
			vx = p.InputX / mag * PlayerSpeed
			vy = p.InputY / mag * PlayerSpeed
		}

		p.X = clamp(p.X+vx*dt, PlayerRadius, ArenaWidth-PlayerRadius)
		p.Y = clamp(p.Y+vy*dt, PlayerRadius, ArenaHeight-PlayerRadius)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
