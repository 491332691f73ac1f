// internal/uow/scope.go
package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adoptyme/backend/internal/domain"
)

// ErrScopeClosed is returned when a committed or rolled-back scope is
// used again.
var ErrScopeClosed = errors.New("scope already closed")

type scopeState int

const (
	scopeOpen scopeState = iota
	scopeCommitted
	scopeRolledBack
)

// Scope is one unit of work: a store session plus a buffer of domain
// events that are published only after the session commits.
type Scope struct {
	ctx     context.Context
	session Session
	bus     *Bus
	events  []domain.Event
	state   scopeState
}

// Session returns the store handle for repository calls.
func (s *Scope) Session() Session { return s.session }

// Emit buffers an event for publication after commit. Events from a
// rolled-back scope are never published.
func (s *Scope) Emit(event domain.Event) {
	if s.state != scopeOpen {
		panic(ErrScopeClosed)
	}
	s.events = append(s.events, event)
}

// Flush is a visibility checkpoint: every prior write in this scope is
// already applied to the session's transaction, so subsequent reads in
// the same scope observe it.
func (s *Scope) Flush() error {
	if s.state != scopeOpen {
		return ErrScopeClosed
	}
	return nil
}

// Commit makes the session's mutations durable and then publishes the
// buffered events in emission order. A publication failure is surfaced
// to the bus's error sink, never undone.
func (s *Scope) Commit() error {
	if s.state != scopeOpen {
		return ErrScopeClosed
	}
	if err := s.session.Commit(); err != nil {
		s.state = scopeRolledBack
		return fmt.Errorf("committing scope: %w", err)
	}
	s.state = scopeCommitted
	if len(s.events) > 0 {
		s.bus.Post(s.ctx, s.events)
	}
	return nil
}

// Rollback discards the session's mutations and the event buffer.
func (s *Scope) Rollback() error {
	if s.state != scopeOpen {
		return ErrScopeClosed
	}
	s.state = scopeRolledBack
	s.events = nil
	return s.session.Rollback()
}

// Manager opens scopes over a session factory and a bus.
type Manager struct {
	sessions SessionFactory
	bus      *Bus
}

func NewManager(sessions SessionFactory, bus *Bus) *Manager {
	return &Manager{sessions: sessions, bus: bus}
}

// Begin opens a scope. The caller owns the commit-or-rollback decision.
func (m *Manager) Begin(ctx context.Context) (*Scope, error) {
	session, err := m.sessions.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	return &Scope{ctx: ctx, session: session, bus: m.bus}, nil
}

// Run opens a scope, invokes fn, commits on a nil return and rolls back
// on error or panic. Panics are re-raised after the rollback.
func (m *Manager) Run(ctx context.Context, fn func(ctx context.Context, scope *Scope) error) error {
	scope, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if rerr := scope.Rollback(); rerr != nil && !errors.Is(rerr, ErrScopeClosed) {
				slog.Error("rollback after panic failed", "error", rerr)
			}
			panic(r)
		}
	}()

	if err := fn(ctx, scope); err != nil {
		if rerr := scope.Rollback(); rerr != nil && !errors.Is(rerr, ErrScopeClosed) {
			slog.Error("rollback failed", "error", rerr)
		}
		return err
	}

	return scope.Commit()
}
