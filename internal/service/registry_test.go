package service

import (
	"sync"
	"testing"
)

func TestRegistrySlotIsStable(t *testing.T) {
	r := newSessionRegistry()

	if got := r.slot(1); got != r.slot(1) {
		t.Fatalf("expected the same slot for repeated lookups")
	}
	if r.slot(1) == r.slot(2) {
		t.Fatalf("expected distinct slots for distinct users")
	}
}

func TestRegistryConcurrentSlotCreation(t *testing.T) {
	r := newSessionRegistry()

	const n = 32
	slots := make([]*userSlot, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots[i] = r.slot(7)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if slots[i] != slots[0] {
			t.Fatalf("goroutine %d got a different slot", i)
		}
	}
}

func TestRegistryUserIDsSnapshot(t *testing.T) {
	r := newSessionRegistry()
	r.slot(1)
	r.slot(2)
	r.slot(3)

	ids := r.userIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 user IDs, got %d", len(ids))
	}

	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []int64{1, 2, 3} {
		if !seen[want] {
			t.Fatalf("missing user ID %d in snapshot %v", want, ids)
		}
	}
}
