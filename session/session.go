// Package session runs one two-player game: the lifecycle state machine and
// the fixed-rate tick loop that is the sole writer of authoritative state.
// Connections never touch the state directly; everything funnels through the
// Inbox and the two delay queues.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/game"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/latency"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseRunning
	PhaseTerminated
)

var (
	// ErrSessionFull rejects a connection beyond the player threshold; the
	// session is two-player-exact.
	ErrSessionFull = errors.New("session full")
	// ErrSessionOver rejects a connection after termination.
	ErrSessionOver = errors.New("session over")
)

type Config struct {
	TickRate      int
	UplinkDelay   time.Duration
	DownlinkDelay time.Duration
	InitialCoins  int
	SpawnInterval time.Duration
	CoinMax       int
	StartPlayers  int
	Seed          int64
}

func DefaultConfig() Config {
	return Config{
		TickRate:      120,
		UplinkDelay:   200 * time.Millisecond,
		DownlinkDelay: 200 * time.Millisecond,
		InitialCoins:  5,
		SpawnInterval: 5 * time.Second,
		CoinMax:       20,
		StartPlayers:  2,
		Seed:          1,
	}
}

type Session struct {
	Inbox chan any

	// OnTerminated runs after the loop has stopped, once the session has
	// reached PhaseTerminated. The server process uses it to exit.
	OnTerminated func()

	cfg        Config
	tickPeriod time.Duration
	dt         float64

	phase    Phase
	state    *game.State
	spawner  *game.Spawner
	clients  map[string]Conn
	uplink   *latency.Queue[Input]
	downlink *latency.Queue[[]byte]
	nextID   int

	quit     chan struct{}
	stopOnce sync.Once
}

func New(cfg Config) *Session {
	return &Session{
		Inbox:      make(chan any, 256),
		cfg:        cfg,
		tickPeriod: time.Second / time.Duration(cfg.TickRate),
		dt:         1.0 / float64(cfg.TickRate),
		phase:      PhaseWaiting,
		state:      game.NewState(),
		spawner:    game.NewSpawner(cfg.Seed, cfg.SpawnInterval, cfg.CoinMax),
		clients:    make(map[string]Conn),
		uplink:     latency.NewQueue[Input](cfg.UplinkDelay),
		downlink:   latency.NewQueue[[]byte](cfg.DownlinkDelay),
		nextID:     1,
		quit:       make(chan struct{}),
	}
}

func (s *Session) Phase() Phase { return s.phase }

// Stop ends the loop without waiting for the normal termination condition.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Run drives the session until it terminates. Commands and ticks are
// handled on this one goroutine, so state mutation is never concurrent.
func (s *Session) Run() {
	ticker := time.NewTicker(s.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			if s.phase == PhaseTerminated && s.OnTerminated != nil {
				s.OnTerminated()
			}
			return
		case cmd := <-s.Inbox:
			s.handleCommand(cmd, time.Now())
		case now := <-ticker.C:
			s.step(now)
		}
	}
}

func (s *Session) handleCommand(cmd any, now time.Time) {
	switch c := cmd.(type) {
	case Join:
		s.handleJoin(c, now)
	case Input:
		if s.phase == PhaseTerminated {
			return
		}
		s.uplink.Enqueue(c, now)
	case Leave:
		s.handleLeave(c.PlayerID)
	default:
		log.Printf("session: dropping unknown command %T", cmd)
	}
}

func (s *Session) handleJoin(c Join, now time.Time) {
	if s.phase == PhaseTerminated {
		c.Reply <- JoinResult{Err: ErrSessionOver}
		return
	}
	if s.phase == PhaseRunning || len(s.clients) >= s.cfg.StartPlayers {
		c.Reply <- JoinResult{Err: ErrSessionFull}
		return
	}

	playerID := fmt.Sprintf("player-%d", s.nextID)
	s.nextID++
	x, y := s.spawner.PlayerSpawn()
	s.state.AddPlayer(playerID, x, y)
	s.clients[playerID] = c.Conn

	// Welcome and start are control messages; only state traffic goes
	// through the downlink delay.
	s.sendTo(playerID, protocol.Welcome{
		Type:         protocol.MsgWelcome,
		PlayerID:     playerID,
		ArenaWidth:   game.ArenaWidth,
		ArenaHeight:  game.ArenaHeight,
		PlayerRadius: game.PlayerRadius,
		CoinRadius:   game.CoinRadius,
		TickHz:       s.cfg.TickRate,
	})

	c.Reply <- JoinResult{PlayerID: playerID}
	log.Printf("session: %s connected (%d/%d players)", playerID, len(s.clients), s.cfg.StartPlayers)

	if s.phase == PhaseWaiting && len(s.clients) == s.cfg.StartPlayers {
		s.start()
	}
}

func (s *Session) start() {
	s.phase = PhaseRunning
	s.spawner.SpawnInitial(s.state, s.cfg.InitialCoins)
	log.Printf("session: started with %d coins", len(s.state.Coins))

	b, err := protocol.Encode(protocol.Start{Type: protocol.MsgStart})
	if err != nil {
		log.Printf("session: encode start: %v", err)
		return
	}
	s.broadcast(b)
}

func (s *Session) handleLeave(playerID string) {
	conn, ok := s.clients[playerID]
	if !ok {
		return
	}
	purged := s.uplink.Purge(func(in Input) bool { return in.PlayerID == playerID })
	s.state.RemovePlayer(playerID)
	delete(s.clients, playerID)
	_ = conn.Close()
	log.Printf("session: %s disconnected, %d pending inputs purged (%d players left)",
		playerID, purged, len(s.clients))

	if s.phase == PhaseRunning && len(s.clients) == 0 {
		s.terminate()
	}
}

func (s *Session) terminate() {
	s.phase = PhaseTerminated
	log.Printf("session: all players gone, terminating")
	s.Stop()
}

// step is one simulation tick: apply delayed inputs, integrate, collect,
// spawn, snapshot, release due snapshots.
func (s *Session) step(now time.Time) {
	for _, in := range s.uplink.Drain(now) {
		// Unknown player: the input outlived its sender. Drop silently.
		s.state.ApplyInput(in.PlayerID, in.DX, in.DY)
	}

	if s.phase != PhaseRunning {
		return
	}

	game.Step(s.state, s.dt)
	for _, p := range game.CheckPickups(s.state) {
		log.Printf("session: %s picked up %s (+%d)", p.PlayerID, p.CoinID, p.Value)
	}
	s.spawner.Advance(s.state, s.tickPeriod)

	snap := s.state.Snapshot(now.UnixMilli())
	b, err := protocol.Encode(snap)
	if err != nil {
		log.Printf("session: encode snapshot: %v", err)
	} else {
		s.downlink.Enqueue(b, now)
	}

	for _, due := range s.downlink.Drain(now) {
		s.broadcast(due)
	}
}

func (s *Session) broadcast(b []byte) {
	var failed []string
	for id, c := range s.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		s.handleLeave(id)
	}
}

func (s *Session) sendTo(playerID string, payload any) {
	c, ok := s.clients[playerID]
	if !ok {
		return
	}
	b, err := protocol.Encode(payload)
	if err != nil {
		log.Printf("session: encode for %s: %v", playerID, err)
		return
	}
	if err := c.Send(b); err != nil {
		s.handleLeave(playerID)
	}
}
