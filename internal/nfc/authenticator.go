package nfc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zargony/touch-n-drink/internal/models"
)

// Authenticator polls the reader, retries recoverable read errors a bounded
// number of times and deduplicates repeated reads of the same physical tag,
// so one tap produces exactly one card event.
type Authenticator struct {
	reader   Reader
	logger   *slog.Logger
	attempts int
	debounce time.Duration
	out      chan Event
	now      func() time.Time

	lastTag    models.TagID
	lastReadAt time.Time
}

// NewAuthenticator creates a new card authenticator. attempts is the number
// of reads tried on transient errors before a read error is surfaced;
// debounce is the window within which repeated reads of the same tag are
// dropped.
func NewAuthenticator(reader Reader, attempts int, debounce time.Duration, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		reader:   reader,
		logger:   logger,
		attempts: attempts,
		debounce: debounce,
		out:      make(chan Event, 4),
		now:      time.Now,
	}
}

// Events returns the card event stream consumed by the input mediator.
func (a *Authenticator) Events() <-chan Event {
	return a.out
}

// Run polls the reader until ctx is cancelled.
func (a *Authenticator) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		tag, err := a.readWithRetry(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return
		case errors.Is(err, ErrNoTag):
			continue
		case err != nil:
			a.logger.Warn("nfc: read failed", "error", err)
			a.deliver(ctx, Event{Err: err})
		default:
			if a.debounced(tag) {
				a.logger.Debug("nfc: duplicate tag read dropped", "tag", tag)
				continue
			}
			a.logger.Debug("nfc: tag read", "tag", tag)
			a.deliver(ctx, Event{Tag: tag})
		}
	}
}

// readWithRetry reads one tag, retrying transient reader faults up to the
// configured attempt count. Non-transient errors surface immediately.
func (a *Authenticator) readWithRetry(ctx context.Context) (models.TagID, error) {
	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		tag, err := a.reader.ReadTag(ctx)
		if err == nil {
			return tag, nil
		}
		if !errors.Is(err, ErrTransient) {
			return "", err
		}
		a.logger.Debug("nfc: transient read error", "attempt", attempt, "error", err)
		lastErr = err
	}
	return "", lastErr
}

// debounced reports whether the tag was already read within the debounce
// window and updates the window.
func (a *Authenticator) debounced(tag models.TagID) bool {
	now := a.now()
	duplicate := tag == a.lastTag && now.Sub(a.lastReadAt) < a.debounce
	a.lastTag = tag
	a.lastReadAt = now
	return duplicate
}

// deliver sends an event unless ctx is cancelled first.
func (a *Authenticator) deliver(ctx context.Context, ev Event) {
	select {
	case a.out <- ev:
	case <-ctx.Done():
	}
}
