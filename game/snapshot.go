package game

import "github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"

// Snapshot copies the current state into an immutable wire message. Entities
// appear in sorted id order so identical states encode identically.
func (s *State) Snapshot(timestamp int64) protocol.State {
	snap := protocol.State{
		Type:      protocol.MsgState,
		Timestamp: timestamp,
		Players:   make([]protocol.PlayerSnapshot, 0, len(s.Players)),
		Coins:     make([]protocol.CoinSnapshot, 0, len(s.Coins)),
	}
	for _, id := range s.playerIDs() {
		p := s.Players[id]
		snap.Players = append(snap.Players, protocol.PlayerSnapshot{
			ID:    p.ID,
			X:     p.X,
			Y:     p.Y,
			Score: p.Score,
		})
	}
	for _, id := range s.coinIDs() {
		c := s.Coins[id]
		snap.Coins = append(snap.Coins, protocol.CoinSnapshot{ID: c.ID, X: c.X, Y: c.Y})
	}
	return snap
}
