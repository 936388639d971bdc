package protocol

// Messages coming in from the client.

// Input carries the player's current movement intent. DX/DY form a
// direction vector; the server normalizes, so magnitude carries no
// speed information. SentAt is the client clock in unix milliseconds.
type Input struct {
	Type   string  `json:"type"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	SentAt int64   `json:"sentAt"`
}
