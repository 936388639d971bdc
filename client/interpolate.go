package client

import (
	"sort"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

// View is the state the client should draw for one frame.
type View struct {
	Timestamp int64
	Players   []protocol.PlayerSnapshot
	Coins     []protocol.CoinSnapshot
}

// Interpolate computes the render state for renderTime from the buffer.
//
//   - Both brackets present: positions lerp between them; entities present
//     in only one side appear/disappear discretely at their known position.
//   - No later snapshot yet (stall): freeze at the earlier one.
//   - renderTime precedes the whole buffer (cold start): hold at the
//     earliest snapshot.
//
// Returns false only when the buffer is empty.
func Interpolate(b *Buffer, renderTime int64) (View, bool) {
	if b.Len() == 0 {
		return View{}, false
	}

	s0, s1 := b.bracket(renderTime)
	if s0 == nil {
		return viewOf(s1, renderTime), true
	}
	if s1 == nil {
		return viewOf(s0, renderTime), true
	}

	t := float64(renderTime-s0.Timestamp) / float64(s1.Timestamp-s0.Timestamp)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	view := View{Timestamp: renderTime}

	prev := make(map[string]protocol.PlayerSnapshot, len(s0.Players))
	for _, p := range s0.Players {
		prev[p.ID] = p
	}
	seen := make(map[string]bool, len(s1.Players))
	for _, p1 := range s1.Players {
		seen[p1.ID] = true
		if p0, ok := prev[p1.ID]; ok {
			view.Players = append(view.Players, protocol.PlayerSnapshot{
				ID:    p1.ID,
				X:     p0.X + t*(p1.X-p0.X),
				Y:     p0.Y + t*(p1.Y-p0.Y),
				Score: p1.Score,
			})
		} else {
			view.Players = append(view.Players, p1)
		}
	}
	for _, p0 := range s0.Players {
		if !seen[p0.ID] {
			view.Players = append(view.Players, p0)
		}
	}

	// Coins never move; interpolation degenerates to presence. A coin in
	// only one snapshot pops in or out at its known position.
	coinSeen := make(map[string]bool, len(s1.Coins))
	for _, c := range s1.Coins {
		coinSeen[c.ID] = true
		view.Coins = append(view.Coins, c)
	}
	for _, c := range s0.Coins {
		if !coinSeen[c.ID] {
			view.Coins = append(view.Coins, c)
		}
	}

	sortView(&view)
	return view, true
}

func viewOf(s *protocol.State, renderTime int64) View {
	view := View{
		Timestamp: renderTime,
		Players:   append([]protocol.PlayerSnapshot(nil), s.Players...),
		Coins:     append([]protocol.CoinSnapshot(nil), s.Coins...),
	}
	sortView(&view)
	return view
}

func sortView(v *View) {
	sort.Slice(v.Players, func(i, j int) bool { return v.Players[i].ID < v.Players[j].ID })
	sort.Slice(v.Coins, func(i, j int) bool { return v.Coins[i].ID < v.Coins[j].ID })
}
