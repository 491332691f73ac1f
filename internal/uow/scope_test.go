// internal/uow/scope_test.go
package uow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvent struct {
	name string
}

func (e stubEvent) EventName() string { return e.name }

type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) handle(_ context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, event.EventName())
	return nil
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func TestScopeCommitPublishesBufferedEvents(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	bus.On("first", rec.handle)
	bus.On("second", rec.handle)

	manager := NewManager(NewMemorySessionFactory(), bus)
	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	scope.Emit(stubEvent{name: "first"})
	scope.Emit(stubEvent{name: "second"})
	assert.Empty(t, rec.all(), "events must not publish before commit")

	require.NoError(t, scope.Commit())

	require.Eventually(t, func() bool {
		return len(rec.all()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, rec.all())
}

func TestScopeRollbackDiscardsEvents(t *testing.T) {
	manager := NewManager(NewMemorySessionFactory(), NewBus())
	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	scope.Emit(stubEvent{name: "doomed"})
	require.NoError(t, scope.Rollback())

	assert.Nil(t, scope.events)
	assert.Equal(t, scopeRolledBack, scope.state)
}

func TestScopeClosedReuse(t *testing.T) {
	manager := NewManager(NewMemorySessionFactory(), NewBus())
	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, scope.Commit())

	assert.ErrorIs(t, scope.Commit(), ErrScopeClosed)
	assert.ErrorIs(t, scope.Rollback(), ErrScopeClosed)
	assert.ErrorIs(t, scope.Flush(), ErrScopeClosed)
	assert.PanicsWithValue(t, ErrScopeClosed, func() {
		scope.Emit(stubEvent{name: "late"})
	})
}

func TestManagerRunCommitsOnNil(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	bus.On("committed", rec.handle)
	manager := NewManager(NewMemorySessionFactory(), bus)

	err := manager.Run(context.Background(), func(ctx context.Context, scope *Scope) error {
		scope.Emit(stubEvent{name: "committed"})
		return nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(rec.all()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestManagerRunRollsBackOnError(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	bus.On("doomed", rec.handle)
	manager := NewManager(NewMemorySessionFactory(), bus)

	boom := errors.New("boom")
	var captured *Scope
	err := manager.Run(context.Background(), func(ctx context.Context, scope *Scope) error {
		captured = scope
		scope.Emit(stubEvent{name: "doomed"})
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, scopeRolledBack, captured.state)
	assert.Empty(t, rec.all())
}

func TestManagerRunRepanicsAfterRollback(t *testing.T) {
	manager := NewManager(NewMemorySessionFactory(), NewBus())

	var captured *Scope
	require.PanicsWithValue(t, "kaboom", func() {
		_ = manager.Run(context.Background(), func(ctx context.Context, scope *Scope) error {
			captured = scope
			scope.Emit(stubEvent{name: "doomed"})
			panic("kaboom")
		})
	})
	assert.Equal(t, scopeRolledBack, captured.state)
	assert.Nil(t, captured.events)
}
