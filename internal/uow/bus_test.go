// internal/uow/bus_test.go
package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, posting *Posting) {
	t.Helper()
	select {
	case <-posting.Done():
	case <-time.After(time.Second):
		t.Fatal("posting did not finish")
	}
}

func TestBusHandlersRunInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.On("evt", func(ctx context.Context, event domain.Event) error {
			order = append(order, i)
			return nil
		})
	}

	posting := bus.Post(context.Background(), []domain.Event{stubEvent{name: "evt"}})
	waitDone(t, posting)

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestBusEventsDispatchInEmissionOrder(t *testing.T) {
	bus := NewBus()
	var seen []string
	handler := func(ctx context.Context, event domain.Event) error {
		seen = append(seen, event.EventName())
		return nil
	}
	bus.On("a", handler)
	bus.On("b", handler)

	posting := bus.Post(context.Background(), []domain.Event{
		stubEvent{name: "b"},
		stubEvent{name: "a"},
		stubEvent{name: "b"},
	})
	waitDone(t, posting)

	assert.Equal(t, []string{"b", "a", "b"}, seen)
}

func TestBusFailingHandlerDoesNotAbortSiblings(t *testing.T) {
	bus := NewBus()
	boom := errors.New("handler failed")
	var secondRan bool
	bus.On("evt", func(ctx context.Context, event domain.Event) error { return boom })
	bus.On("evt", func(ctx context.Context, event domain.Event) error {
		secondRan = true
		return nil
	})

	posting := bus.Post(context.Background(), []domain.Event{stubEvent{name: "evt"}})
	waitDone(t, posting)

	assert.True(t, secondRan)
	require.Len(t, posting.Errs(), 1)
	assert.ErrorIs(t, posting.Errs()[0], boom)
	assert.Equal(t, int64(1), bus.HandlerFailures())
}

func TestBusNoHandlersStillCompletes(t *testing.T) {
	bus := NewBus()
	posting := bus.Post(context.Background(), []domain.Event{stubEvent{name: "nobody"}})
	waitDone(t, posting)
	assert.Empty(t, posting.Errs())
}
