package common

import (
	"context"
	"sync"

	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// PlayerLocks hands out one mutex per player id.
// Operations on different players never contend.
type PlayerLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewPlayerLocks creates an empty lock registry
func NewPlayerLocks() *PlayerLocks {
	return &PlayerLocks{locks: make(map[int]*sync.Mutex)}
}

// Lock blocks until the player's section is free and returns its release func
func (l *PlayerLocks) Lock(playerID shared.PlayerID) func() {
	l.mu.Lock()
	m, ok := l.locks[playerID.Value()]
	if !ok {
		m = &sync.Mutex{}
		l.locks[playerID.Value()] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// SerializedUnitOfWork runs every unit of work for a player under that player's lock
type SerializedUnitOfWork struct {
	inner player.UnitOfWork
	locks *PlayerLocks
}

// NewSerializedUnitOfWork wraps inner so each player has a single writer
func NewSerializedUnitOfWork(inner player.UnitOfWork, locks *PlayerLocks) *SerializedUnitOfWork {
	if locks == nil {
		locks = NewPlayerLocks()
	}
	return &SerializedUnitOfWork{inner: inner, locks: locks}
}

// Execute implements player.UnitOfWork
func (u *SerializedUnitOfWork) Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, p *player.Player) error) error {
	release := u.locks.Lock(playerID)
	defer release()

	return u.inner.Execute(ctx, playerID, fn)
}
