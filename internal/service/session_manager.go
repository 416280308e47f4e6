package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Manager owns every live Session. Sessions idle longer than ttl are dropped
// from memory and restored from the store on their next use.
type Manager struct {
	sessions map[string]*Session
	store    *storage.Store
	ttl      time.Duration
	mu       sync.RWMutex
}

func NewManager(store *storage.Store, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		ttl:      ttl,
	}
}

// Create starts a session from fen ("" for the standard start).
func (m *Manager) Create(fen string) (*Session, error) {
	game, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadInput, err)
	}

	s := newSession(uuid.New().String(), game, m.store)
	if err := m.store.Save(s.snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Infof("session %s created", s.ID)
	return s, nil
}

// Get returns the live session, restoring it from the store if it was evicted.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	if exists {
		// Refreshed before m.mu is released so evictIdle cannot drop s
		// between this lookup and the caller's use.
		s.touch()
	}
	m.mu.RUnlock()
	if exists {
		return s, nil
	}

	snap, err := m.store.Load(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	restored, err := restore(snap, m.store)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, exists := m.sessions[id]; exists {
		return s, nil
	}
	m.sessions[id] = restored
	log.Infof("session %s restored with %d moves", id, len(snap.Moves))
	return restored, nil
}

// restore replays the stored moves on the stored starting position.
func restore(snap storage.Snapshot, store *storage.Store) (*Session, error) {
	game, err := engine.NewGameFromFEN(snap.InitialFEN)
	if err != nil {
		return nil, fmt.Errorf("session %s: stored position: %w", snap.ID, err)
	}
	for i, uci := range snap.Moves {
		if _, err := game.MakeUCI(uci); err != nil {
			return nil, fmt.Errorf("session %s: replay move %d (%s): %w", snap.ID, i+1, uci, err)
		}
	}
	return newSession(snap.ID, game, store), nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, live := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !live {
		if _, err := m.store.Load(id); errors.Is(err, storage.ErrNotFound) {
			return ErrSessionNotFound
		}
	}
	if err := m.store.Delete(id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	log.Infof("session %s deleted", id)
	return nil
}

// Run evicts idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.evictIdle(now); n > 0 {
				log.Debugf("evicted %d idle sessions, %d still live", n, m.Live())
			}
		}
	}
}

// evictIdle drops sessions untouched since now-ttl that nobody is watching.
// Sessions busy with an operation are kept.
func (m *Manager) evictIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.connectionCount() > 0 {
			continue
		}
		if idle, busy := s.idleFor(now); busy || idle < m.ttl {
			continue
		}
		delete(m.sessions, id)
		evicted++
	}
	return evicted
}

// SessionSummary describes a stored session without restoring it.
type SessionSummary struct {
	ID         string    `json:"id"`
	InitialFEN string    `json:"initialFen"`
	Moves      int       `json:"moves"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Live       bool      `json:"live"`
}

// List summarises every stored session; Live marks those held in memory.
func (m *Manager) List() ([]SessionSummary, error) {
	snaps, err := m.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SessionSummary, 0, len(snaps))
	for _, snap := range snaps {
		_, live := m.sessions[snap.ID]
		out = append(out, SessionSummary{
			ID:         snap.ID,
			InitialFEN: snap.InitialFEN,
			Moves:      len(snap.Moves),
			UpdatedAt:  snap.UpdatedAt,
			Live:       live,
		})
	}
	return out, nil
}

// Live reports how many sessions are held in memory.
func (m *Manager) Live() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
