// Package config loads tunables from the environment, with a .env file as
// an optional source. Every knob has a default; an unset variable is never
// an error, a malformed one is logged and ignored.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string

	TickRate      int
	UplinkDelay   time.Duration
	DownlinkDelay time.Duration
	InterpDelay   time.Duration

	InitialCoins  int
	SpawnInterval time.Duration
	CoinMax       int
	StartPlayers  int

	// Seed drives all random placement. 0 means derive from the clock;
	// set it explicitly to replay a session.
	Seed int64
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	return Config{
		ListenAddr:    getString("LISTEN_ADDR", ":8765"),
		TickRate:      getInt("TICK_RATE", 120),
		UplinkDelay:   getMillis("UPLINK_DELAY_MS", 200*time.Millisecond),
		DownlinkDelay: getMillis("DOWNLINK_DELAY_MS", 200*time.Millisecond),
		InterpDelay:   getMillis("INTERP_DELAY_MS", 350*time.Millisecond),
		InitialCoins:  getInt("INITIAL_COIN_COUNT", 5),
		SpawnInterval: getMillis("COIN_SPAWN_INTERVAL_MS", 5*time.Second),
		CoinMax:       getInt("COIN_MAX", 20),
		StartPlayers:  getInt("SESSION_START_PLAYERS", 2),
		Seed:          getInt64("COIN_SEED", 0),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: ignoring %s=%q: want a positive integer", key, v)
		return def
	}
	return n
}

func getInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("config: ignoring %s=%q: want an integer", key, v)
		return def
	}
	return n
}

func getMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("config: ignoring %s=%q: want milliseconds as a non-negative integer", key, v)
		return def
	}
	return time.Duration(n) * time.Millisecond
}
