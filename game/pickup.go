package game

import "math"

// Pickup records one collected coin for logging.
type Pickup struct {
	CoinID   string
	PlayerID string
	Value    int
}

// CheckPickups awards every coin within PickupRadius of a player and
// removes it, both in the same pass. When two players are in range of the
// same coin on the same tick, the lower player id wins; iteration is in
// sorted id order so the tie-break is stable across replays.
func CheckPickups(s *State) []Pickup {
	var picked []Pickup

	playerIDs := s.playerIDs()
	for _, coinID := range s.coinIDs() {
		coin := s.Coins[coinID]
		for _, playerID := range playerIDs {
			p := s.Players[playerID]
			if math.Hypot(coin.X-p.X, coin.Y-p.Y) >= PickupRadius {
				continue
			}
			p.Score += coin.Value
			delete(s.Coins, coinID)
			picked = append(picked, Pickup{CoinID: coinID, PlayerID: playerID, Value: coin.Value})
			break
		}
	}
	return picked
}
