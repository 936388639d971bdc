package client

import (
	"testing"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/protocol"
)

func snapAt(ts int64) protocol.State {
	return protocol.State{Type: protocol.MsgState, Timestamp: ts}
}

func TestInsertKeepsTimestampOrder(t *testing.T) {
	b := NewBuffer()
	for _, ts := range []int64{100, 200, 300} {
		if !b.Insert(snapAt(ts)) {
			t.Fatalf("in-order insert of %d rejected", ts)
		}
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
}

func TestInsertRejectsOutOfOrder(t *testing.T) {
	b := NewBuffer()
	b.Insert(snapAt(200))

	if b.Insert(snapAt(100)) {
		t.Fatalf("older snapshot accepted")
	}
	if b.Insert(snapAt(200)) {
		t.Fatalf("duplicate timestamp accepted")
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
}

func TestEvictKeepsBracketingSnapshot(t *testing.T) {
	b := NewBuffer()
	for _, ts := range []int64{0, 100, 200, 300, 400} {
		b.Insert(snapAt(ts))
	}

	// Cutoff 250: snapshot 200 is still the lower bracket; 0 and 100 go.
	b.EvictOlderThan(250)
	if b.Len() != 3 {
		t.Fatalf("len after evict = %d, want 3", b.Len())
	}
	s0, s1 := b.bracket(250)
	if s0 == nil || s0.Timestamp != 200 {
		t.Fatalf("lower bracket lost by eviction: %+v", s0)
	}
	if s1 == nil || s1.Timestamp != 300 {
		t.Fatalf("upper bracket = %+v, want ts 300", s1)
	}
}

func TestEvictBeforeAllKeepsEverything(t *testing.T) {
	b := NewBuffer()
	b.Insert(snapAt(100))
	b.Insert(snapAt(200))
	b.EvictOlderThan(50)
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBracketSelection(t *testing.T) {
	b := NewBuffer()
	for _, ts := range []int64{0, 100, 200, 300} {
		b.Insert(snapAt(ts))
	}

	s0, s1 := b.bracket(150)
	if s0 == nil || s0.Timestamp != 100 {
		t.Fatalf("s0 = %+v, want ts 100", s0)
	}
	if s1 == nil || s1.Timestamp != 200 {
		t.Fatalf("s1 = %+v, want ts 200", s1)
	}

	// Exactly on a snapshot: that snapshot is the lower bracket.
	s0, s1 = b.bracket(200)
	if s0 == nil || s0.Timestamp != 200 {
		t.Fatalf("s0 at exact ts = %+v, want ts 200", s0)
	}
	if s1 == nil || s1.Timestamp != 300 {
		t.Fatalf("s1 at exact ts = %+v, want ts 300", s1)
	}

	// Before the buffer: no lower bracket.
	s0, s1 = b.bracket(-50)
	if s0 != nil {
		t.Fatalf("s0 before buffer = %+v, want nil", s0)
	}
	if s1 == nil || s1.Timestamp != 0 {
		t.Fatalf("s1 before buffer = %+v, want ts 0", s1)
	}

	// After the buffer: no upper bracket.
	s0, s1 = b.bracket(1000)
	if s0 == nil || s0.Timestamp != 300 {
		t.Fatalf("s0 after buffer = %+v, want ts 300", s0)
	}
	if s1 != nil {
		t.Fatalf("s1 after buffer = %+v, want nil", s1)
	}
}
