package service

import (
	"sync"

	"triviabot/internal/domain/entities"
)

// sessionRegistry holds the single active session per user. Each user
// gets their own slot with its own lock, so operations for different
// users never contend; the slot lock serializes the
// read-check-transition-commit sequence for one user.
type sessionRegistry struct {
	mu    sync.Mutex
	slots map[int64]*userSlot
}

type userSlot struct {
	mu      sync.Mutex
	session *entities.QuizSession // nil when the user has no pending session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		slots: make(map[int64]*userSlot),
	}
}

// slot returns the slot for a user, creating it on first use. Slots
// are never removed: the per-user footprint is one pointer and a
// mutex, and reuse keeps locking simple.
func (r *sessionRegistry) slot(userID int64) *userSlot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[userID]
	if !ok {
		s = &userSlot{}
		r.slots[userID] = s
	}
	return s
}

// userIDs returns a snapshot of all known user IDs for the sweep.
func (r *sessionRegistry) userIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(r.slots))
	for id := range r.slots {
		ids = append(ids, id)
	}
	return ids
}
