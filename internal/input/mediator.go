// Package input merges the keypad and card event producers into the single
// ordered event stream consumed by the transaction state machine. Events
// are delivered in the order they arrive; the mediator never reorders, but
// drops keypad events while a submission is in progress.
package input

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/zargony/touch-n-drink/internal/keypad"
	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/nfc"
)

// Kind discriminates mediated events.
type Kind int

// Mediated event kinds
const (
	KindCard      Kind = iota // a tag was read
	KindCardError             // the reader failed terminally
	KindKey                   // a key was pressed
)

// Event is one mediated input event.
type Event struct {
	Kind Kind
	Tag  models.TagID // KindCard
	Err  error        // KindCardError
	Key  keypad.Key   // KindKey
	At   time.Time
}

// Mediator merges card and key events into one stream.
type Mediator struct {
	out       chan Event
	suspended atomic.Bool
	logger    *slog.Logger
	now       func() time.Time
}

// NewMediator creates a new input mediator.
func NewMediator(logger *slog.Logger) *Mediator {
	return &Mediator{
		out:    make(chan Event, 16),
		logger: logger,
		now:    time.Now,
	}
}

// Events returns the merged event stream.
func (m *Mediator) Events() <-chan Event {
	return m.out
}

// Suspend starts the no-input window: keypad events are dropped until
// Resume. Used by the state machine while a submission is in flight.
func (m *Mediator) Suspend() {
	m.suspended.Store(true)
}

// Resume ends the no-input window.
func (m *Mediator) Resume() {
	m.suspended.Store(false)
}

// Run forwards events from both producers until ctx is cancelled or both
// sources are closed.
func (m *Mediator) Run(ctx context.Context, cards <-chan nfc.Event, keys <-chan keypad.Event) {
	for cards != nil || keys != nil {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-cards:
			if !ok {
				cards = nil
				continue
			}
			out := Event{Kind: KindCard, Tag: ev.Tag, At: m.now()}
			if ev.Err != nil {
				out = Event{Kind: KindCardError, Err: ev.Err, At: m.now()}
			}
			m.deliver(ctx, out)

		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			// Only debounced key-down edges reach the state machine
			if ev.Edge != keypad.EdgeDown {
				continue
			}
			if m.suspended.Load() {
				m.logger.Debug("input: key ignored during submission", "key", ev.Key)
				continue
			}
			m.deliver(ctx, Event{Kind: KindKey, Key: ev.Key, At: m.now()})
		}
	}
}

// deliver sends an event unless ctx is cancelled first.
func (m *Mediator) deliver(ctx context.Context, ev Event) {
	select {
	case m.out <- ev:
	case <-ctx.Done():
	}
}
