package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Spawner owns all random placement. It is seeded explicitly so a replay
// with the same seed and the same ordered events reproduces coin positions
// exactly.
type Spawner struct {
	rng      *rand.Rand
	interval time.Duration
	max      int
	elapsed  time.Duration
	nextCoin int
}

func NewSpawner(seed int64, interval time.Duration, max int) *Spawner {
	return &Spawner{
		rng:      rand.New(rand.NewSource(seed)),
		interval: interval,
		max:      max,
	}
}

// SpawnInitial places the starting coin set. Called once, on session start.
func (sp *Spawner) SpawnInitial(s *State, count int) {
	for i := 0; i < count; i++ {
		sp.spawnCoin(s)
	}
}

// Advance accumulates simulated time and spawns one coin per elapsed
// interval while the board is below the cap.
func (sp *Spawner) Advance(s *State, dt time.Duration) {
	sp.elapsed += dt
	for sp.elapsed >= sp.interval {
		sp.elapsed -= sp.interval
		if len(s.Coins) >= sp.max {
			continue
		}
		sp.spawnCoin(s)
	}
}

// PlayerSpawn draws a uniform in-bounds position for a joining player.
func (sp *Spawner) PlayerSpawn() (float64, float64) {
	x := PlayerRadius + sp.rng.Float64()*(ArenaWidth-2*PlayerRadius)
	y := PlayerRadius + sp.rng.Float64()*(ArenaHeight-2*PlayerRadius)
	return x, y
}

func (sp *Spawner) spawnCoin(s *State) *Coin {
	if len(s.Coins) >= sp.max {
		return nil
	}

	// When attempts run out the last candidate stands, overlap and all.
	var x, y float64
	for attempt := 0; attempt < SpawnMaxAttempts; attempt++ {
		x = CoinRadius + sp.rng.Float64()*(ArenaWidth-2*CoinRadius)
		y = CoinRadius + sp.rng.Float64()*(ArenaHeight-2*CoinRadius)
		if s.clearOfEntities(x, y, SpawnMinSeparation) {
			break
		}
	}

	coin := &Coin{
		ID:    fmt.Sprintf("coin-%d", sp.nextCoin),
		X:     x,
		Y:     y,
		Value: CoinValue,
	}
	sp.nextCoin++
	s.Coins[coin.ID] = coin
	return coin
}

func (s *State) clearOfEntities(x, y, minDist float64) bool {
	for _, id := range s.coinIDs() {
		c := s.Coins[id]
		if hypotLess(c.X-x, c.Y-y, minDist) {
			return false
		}
	}
	for _, id := range s.playerIDs() {
		p := s.Players[id]
		if hypotLess(p.X-x, p.Y-y, minDist) {
			return false
		}
	}
	return true
}

func hypotLess(dx, dy, limit float64) bool {
	return dx*dx+dy*dy < limit*limit
}
