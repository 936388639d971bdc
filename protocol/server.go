package protocol

// Welcome is sent once per connection, immediately after the upgrade.
// It carries the assigned id and the arena geometry so the client has
// no compiled-in world constants.
type Welcome struct {
	Type         string  `json:"type"`
	PlayerID     string  `json:"playerId"`
	ArenaWidth   float64 `json:"arenaWidth"`
	ArenaHeight  float64 `json:"arenaHeight"`
	PlayerRadius float64 `json:"playerRadius"`
	CoinRadius   float64 `json:"coinRadius"`
	TickHz       int     `json:"tickHz"`
}

// Start is broadcast when the session begins.
type Start struct {
	Type string `json:"type"`
}

// State is one immutable snapshot of the authoritative simulation.
// Timestamp is the simulation clock in unix milliseconds.
type State struct {
	Type      string           `json:"type"`
	Timestamp int64            `json:"timestamp"`
	Players   []PlayerSnapshot `json:"players"`
	Coins     []CoinSnapshot   `json:"coins"`
}

type PlayerSnapshot struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score int     `json:"score"`
}

type CoinSnapshot struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Error is sent before the server closes a connection it will not serve.
type Error struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
