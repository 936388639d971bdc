package latency

import (
	"testing"
	"time"
)

func TestDrainWithholdsUntilDue(t *testing.T) {
	q := NewQueue[int](200 * time.Millisecond)
	base := time.Now()

	q.Enqueue(1, base)

	if got := q.Drain(base); got != nil {
		t.Fatalf("drain at enqueue time = %v, want nil", got)
	}
	if got := q.Drain(base.Add(199 * time.Millisecond)); got != nil {
		t.Fatalf("drain 1ms early = %v, want nil", got)
	}

	got := q.Drain(base.Add(200 * time.Millisecond))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("drain at deliver time = %v, want [1]", got)
	}
	if q.Len() != 0 {
		t.Fatalf("len after drain = %d, want 0", q.Len())
	}
}

func TestDrainPreservesInsertionOrder(t *testing.T) {
	q := NewQueue[int](50 * time.Millisecond)
	base := time.Now()

	for i := 0; i < 5; i++ {
		q.Enqueue(i, base.Add(time.Duration(i)*time.Millisecond))
	}

	got := q.Drain(base.Add(time.Second))
	if len(got) != 5 {
		t.Fatalf("drained %d items, want 5", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, want %d (order not preserved)", i, v, i)
		}
	}
}

func TestDrainReleasesOnlyDuePrefix(t *testing.T) {
	q := NewQueue[string](100 * time.Millisecond)
	base := time.Now()

	q.Enqueue("early", base)
	q.Enqueue("late", base.Add(80*time.Millisecond))

	got := q.Drain(base.Add(120 * time.Millisecond))
	if len(got) != 1 || got[0] != "early" {
		t.Fatalf("partial drain = %v, want [early]", got)
	}

	got = q.Drain(base.Add(200 * time.Millisecond))
	if len(got) != 1 || got[0] != "late" {
		t.Fatalf("second drain = %v, want [late]", got)
	}
}

func TestPurgeRemovesMatchingEntries(t *testing.T) {
	q := NewQueue[string](time.Second)
	base := time.Now()

	q.Enqueue("a-1", base)
	q.Enqueue("b-1", base)
	q.Enqueue("a-2", base)
	q.Enqueue("b-2", base)

	removed := q.Purge(func(s string) bool { return s[0] == 'a' })
	if removed != 2 {
		t.Fatalf("purged %d entries, want 2", removed)
	}

	got := q.Drain(base.Add(2 * time.Second))
	if len(got) != 2 || got[0] != "b-1" || got[1] != "b-2" {
		t.Fatalf("post-purge drain = %v, want [b-1 b-2]", got)
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	q := NewQueue[int](time.Millisecond)
	if got := q.Drain(time.Now().Add(time.Hour)); got != nil {
		t.Fatalf("drain of empty queue = %v, want nil", got)
	}
}
