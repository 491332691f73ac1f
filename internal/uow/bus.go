// internal/uow/bus.go
package uow

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/adoptyme/backend/internal/domain"
)

// Handler reacts to a published event. Handlers run outside the emitting
// scope; a handler that needs the store opens its own scope.
type Handler func(ctx context.Context, event domain.Event) error

// Bus is a process-local registry from event name to handlers. The
// table is populated at startup only; Post is safe for concurrent use
// after that.
type Bus struct {
	handlers     map[string][]Handler
	handlerFails atomic.Int64
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// On registers a handler for the named event. Handlers for one event
// run in registration order.
func (b *Bus) On(eventName string, handler Handler) {
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// HandlerFailures reports how many handler invocations returned an
// error since startup.
func (b *Bus) HandlerFailures() int64 { return b.handlerFails.Load() }

// Posting tracks one Post call. Done closes when every handler for
// every event has returned.
type Posting struct {
	done chan struct{}
	errs []error
}

func (p *Posting) Done() <-chan struct{} { return p.done }

// Errs returns the handler errors collected by this posting. Valid only
// after Done is closed.
func (p *Posting) Errs() []error { return p.errs }

// Post dispatches events asynchronously: events in emission order,
// handlers per event in registration order. A failing handler does not
// abort its siblings. No ordering holds between distinct Post calls.
func (b *Bus) Post(ctx context.Context, events []domain.Event) *Posting {
	posting := &Posting{done: make(chan struct{})}

	// Handlers outlive the request that emitted the events.
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(posting.done)
		for _, event := range events {
			for _, handler := range b.handlers[event.EventName()] {
				if err := handler(ctx, event); err != nil {
					b.handlerFails.Add(1)
					posting.errs = append(posting.errs, err)
					slog.Error("event handler failed",
						"event", event.EventName(),
						"error", err,
					)
				}
			}
		}
	}()

	return posting
}
