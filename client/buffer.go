// Package client reconstructs smooth motion from delayed server snapshots:
// a time-ordered buffer plus linear interpolation at a fixed offset behind
// wall time. No prediction, no extrapolation.
package client

import (
	"log"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

// Buffer holds received snapshots in timestamp order. The transport and the
// downlink queue both preserve order, so an out-of-order arrival is an
// anomaly and is discarded.
type Buffer struct {
	snaps []protocol.State
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Insert(s protocol.State) bool {
	if n := len(b.snaps); n > 0 && s.Timestamp <= b.snaps[n-1].Timestamp {
		log.Printf("client: discarding out-of-order snapshot %d (latest %d)",
			s.Timestamp, b.snaps[n-1].Timestamp)
		return false
	}
	b.snaps = append(b.snaps, s)
	return true
}

// EvictOlderThan drops snapshots no longer needed to bracket cutoff: every
// snapshot strictly older than the latest one at or before cutoff.
func (b *Buffer) EvictOlderThan(cutoff int64) {
	keepFrom := 0
	for i, s := range b.snaps {
		if s.Timestamp <= cutoff {
			keepFrom = i
		}
	}
	if keepFrom > 0 {
		b.snaps = append(b.snaps[:0], b.snaps[keepFrom:]...)
	}
}

func (b *Buffer) Len() int {
	return len(b.snaps)
}

// bracket returns the latest snapshot at or before renderTime and the
// earliest one after it. Either may be nil.
func (b *Buffer) bracket(renderTime int64) (s0, s1 *protocol.State) {
	for i := range b.snaps {
		if b.snaps[i].Timestamp <= renderTime {
			s0 = &b.snaps[i]
		} else {
			s1 = &b.snaps[i]
			break
		}
	}
	return s0, s1
}
