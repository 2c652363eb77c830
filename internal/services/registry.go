package services

import (
	"errors"
	"sync"

	"casino-tables-backend/internal/models"
)

var (
	ErrSessionAlreadyActive = errors.New("a game of this kind is already in progress")
	ErrNoActiveSession      = errors.New("no active game of this kind")
)

// SessionRegistry holds at most one live session per (user, game kind)
// pair. Each user gets a slot with its own lock; the engine holds that
// lock for the whole balance-check/mutate/settle unit, so concurrent
// duplicate requests by the same user apply one at a time while
// different users proceed in parallel.
type SessionRegistry struct {
	mu    sync.Mutex
	slots map[int64]*UserSlot
}

// UserSlot is one user's session arena. Sessions are inserted on
// create and removed on settlement; no cross-slot references exist.
type UserSlot struct {
	mu       sync.Mutex
	sessions map[models.GameKind]any
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{slots: make(map[int64]*UserSlot)}
}

// Acquire returns the user's slot with its lock held. The caller must
// Release it once the action is fully applied.
func (r *SessionRegistry) Acquire(userID int64) *UserSlot {
	r.mu.Lock()
	slot, ok := r.slots[userID]
	if !ok {
		slot = &UserSlot{sessions: make(map[models.GameKind]any)}
		r.slots[userID] = slot
	}
	r.mu.Unlock()

	slot.mu.Lock()
	return slot
}

func (s *UserSlot) Release() {
	s.mu.Unlock()
}

func (s *UserSlot) Get(kind models.GameKind) (any, bool) {
	session, ok := s.sessions[kind]
	return session, ok
}

func (s *UserSlot) Put(kind models.GameKind, session any) error {
	if _, ok := s.sessions[kind]; ok {
		return ErrSessionAlreadyActive
	}
	s.sessions[kind] = session
	return nil
}

func (s *UserSlot) Remove(kind models.GameKind) {
	delete(s.sessions, kind)
}
