package game

import "sort"

// Internal truth: the authoritative game state. Mutated only by the session
// tick loop, never concurrently.

type State struct {
	Tick    int
	Players map[string]*Player
	Coins   map[string]*Coin
}

type Player struct {
	ID     string
	X, Y   float64
	InputX float64
	InputY float64
	Score  int
}

type Coin struct {
	ID    string
	X, Y  float64
	Value int
}

func NewState() *State {
	return &State{
		Players: make(map[string]*Player),
		Coins:   make(map[string]*Coin),
	}
}

func (s *State) AddPlayer(id string, x, y float64) {
	s.Players[id] = &Player{ID: id, X: x, Y: y}
}

func (s *State) RemovePlayer(id string) {
	delete(s.Players, id)
}

// ApplyInput records the player's movement intent for upcoming ticks.
// Unknown ids are dropped silently: the player may have disconnected while
// the input was in flight.
func (s *State) ApplyInput(id string, dx, dy float64) bool {
	p, ok := s.Players[id]
	if !ok {
		return false
	}
	p.InputX = dx
	p.InputY = dy
	return true
}

// playerIDs and coinIDs return ids in sorted order. Map iteration order
// would make replays diverge, so every loop over entities goes through
// these.
func (s *State) playerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *State) coinIDs() []string {
	ids := make([]string, 0, len(s.Coins))
	for id := range s.Coins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
