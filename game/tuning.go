package game

const (
	ArenaWidth  = 500.0
	ArenaHeight = 375.0

	PlayerRadius = 25.0
	CoinRadius   = 15.0

	PlayerSpeed = 300.0 // units per second

	CoinValue = 1

	// A coin is collected when a player's center comes within the sum of
	// the two radii, i.e. the circles touch.
	PickupRadius = PlayerRadius + CoinRadius

	// Coin placement keeps this much distance from existing entities,
	// retrying up to SpawnMaxAttempts before accepting the last candidate.
	SpawnMinSeparation = 2 * CoinRadius
	SpawnMaxAttempts   = 10
)
