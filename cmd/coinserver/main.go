package main

import (
	"log"
	"time"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/config"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/network"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/session"
)

func main() {
	cfg := config.Load()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("coinserver: spawn seed %d", seed)

	sess := session.New(session.Config{
		TickRate:      cfg.TickRate,
		UplinkDelay:   cfg.UplinkDelay,
		DownlinkDelay: cfg.DownlinkDelay,
		InitialCoins:  cfg.InitialCoins,
		SpawnInterval: cfg.SpawnInterval,
		CoinMax:       cfg.CoinMax,
		StartPlayers:  cfg.StartPlayers,
		Seed:          seed,
	})

	done := make(chan struct{})
	sess.OnTerminated = func() { close(done) }
	go sess.Run()

	srv := network.NewServer(cfg.ListenAddr, sess)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Printf("coinserver: waiting for %d players to connect", cfg.StartPlayers)
	select {
	case err := <-errCh:
		log.Fatalf("coinserver: %v", err)
	case <-done:
		log.Println("coinserver: session terminated, shutting down")
	}
}
