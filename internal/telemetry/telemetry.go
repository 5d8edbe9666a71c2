package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/zargony/touch-n-drink/internal/models"
)

//go:generate moq -out transport_mock.go . Transport

// Transport delivers a single event to the analytics backend. TrySend
// reports whether delivery succeeded; failures are never retried, telemetry
// is strictly best effort.
type Transport interface {
	TrySend(ctx context.Context, event Event) bool
}

// Event is one analytics event with an optional set of properties.
type Event struct {
	Name   string
	Time   time.Time
	UserID models.UserID // zero when not tied to a user
	Props  map[string]any
}

// SystemStart reports terminal startup.
func SystemStart(version string) Event {
	return Event{Name: "system_start", Props: map[string]any{"version": version}}
}

// DataRefreshed reports a completed directory refresh.
func DataRefreshed(users, articles int, generation uint64) Event {
	return Event{Name: "data_refreshed", Props: map[string]any{
		"users":      users,
		"articles":   articles,
		"generation": generation,
	}}
}

// AuthenticationFailed reports a card presentation that did not resolve to
// a known user. Only a shortened tag prefix is reported, never the full id.
func AuthenticationFailed(tag models.TagID, reason string) Event {
	prefix := string(tag)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return Event{Name: "authentication_failed", Props: map[string]any{
		"tag_prefix": prefix,
		"reason":     reason,
	}}
}

// UserAuthenticated reports a successful card authentication.
func UserAuthenticated(userID models.UserID) Event {
	return Event{Name: "user_authenticated", UserID: userID}
}

// ArticlePurchased reports an accepted purchase.
func ArticlePurchased(userID models.UserID, articleID models.ArticleID, quantity int, totalPrice int64) Event {
	return Event{Name: "article_purchased", UserID: userID, Props: map[string]any{
		"article_id":  string(articleID),
		"quantity":    quantity,
		"total_price": totalPrice,
	}}
}

// Failure reports an operational error in the named component.
func Failure(component string, err error) Event {
	return Event{Name: "error", Props: map[string]any{
		"component": component,
		"error":     err.Error(),
	}}
}

const queueSize = 64

// Emitter queues events for background delivery. Emit never blocks the
// caller: when the queue is full, the event is dropped. A nil transport
// disables telemetry entirely.
type Emitter struct {
	transport Transport
	logger    *slog.Logger
	queue     chan Event
	now       func() time.Time
}

// NewEmitter creates an emitter delivering through transport. Pass a nil
// transport to disable telemetry; Emit becomes a no-op.
func NewEmitter(transport Transport, logger *slog.Logger) *Emitter {
	return &Emitter{
		transport: transport,
		logger:    logger,
		queue:     make(chan Event, queueSize),
		now:       time.Now,
	}
}

// Emit enqueues an event for delivery. It never blocks; when telemetry is
// disabled or the queue is full, the event is dropped silently.
func (e *Emitter) Emit(event Event) {
	if e.transport == nil {
		return
	}
	if event.Time.IsZero() {
		event.Time = e.now()
	}
	select {
	case e.queue <- event:
	default:
		e.logger.Warn("telemetry queue full, dropping event", "event", event.Name)
	}
}

// Run drains the queue until ctx is canceled. Delivery failures are logged
// and the event is discarded.
func (e *Emitter) Run(ctx context.Context) {
	if e.transport == nil {
		<-ctx.Done()
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-e.queue:
			if !e.transport.TrySend(ctx, event) {
				e.logger.Warn("telemetry delivery failed, dropping event", "event", event.Name)
			}
		}
	}
}
