package session

// Conn is the write half of one client connection. The network layer owns
// the real websocket; the session only ever sends encoded messages or
// closes.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once per connection after the upgrade.
type Join struct {
	Conn  Conn
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
	Err      error
}

// Input: one decoded input message from a player. Enqueued onto the uplink
// delay queue on arrival; applied to the simulation once the delay elapses.
type Input struct {
	PlayerID string
	DX, DY   float64
	SentAt   int64
}

// Leave: issued on disconnect, graceful or not.
type Leave struct {
	PlayerID string
}
