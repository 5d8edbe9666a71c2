package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zargony/touch-n-drink/internal/directory"
	"github.com/zargony/touch-n-drink/internal/display"
	"github.com/zargony/touch-n-drink/internal/input"
	"github.com/zargony/touch-n-drink/internal/keypad"
	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/purchase"
	"github.com/zargony/touch-n-drink/internal/telemetry"
)

//go:generate moq -out machine_mock.go . Directory Submitter TokenSource InputGate

// Directory is the machine's view of the user and article directory.
type Directory interface {
	LookupByTag(tag models.TagID) (models.User, error)
	Articles() []models.Article
}

// Submitter posts a confirmed purchase and reports the final outcome.
type Submitter interface {
	Submit(ctx context.Context, req models.PurchaseRequest) models.Outcome
}

// TokenSource issues idempotency tokens, one per confirmed session.
type TokenSource interface {
	Next() string
}

// InputGate blocks keypad input while a submission is in flight.
type InputGate interface {
	Suspend()
	Resume()
}

var (
	_ Directory   = (*directory.Cache)(nil)
	_ Submitter   = (*purchase.Submitter)(nil)
	_ TokenSource = (*purchase.TokenSource)(nil)
	_ InputGate   = (*input.Mediator)(nil)
)

// Config carries the machine's timing and entry policies.
type Config struct {
	// MaxQuantity bounds the quantity a user may enter.
	MaxQuantity int
	// InactivityTimeout discards an inactive session and returns to idle.
	InactivityTimeout time.Duration
	// DisplayHold is how long terminal screens stay up before idle returns.
	DisplayHold time.Duration
}

// Machine is the transaction orchestrator. It consumes the mediated input
// stream, authenticates cards against the directory, walks the user through
// article and quantity selection and drives the submitter on confirmation.
// All transitions happen on the Run goroutine, one event at a time.
type Machine struct {
	cfg       Config
	directory Directory
	submitter Submitter
	tokens    TokenSource
	gate      InputGate
	renderer  display.Renderer
	emitter   *telemetry.Emitter
	logger    *slog.Logger

	state   TxnState
	session Session

	// ignoreKeysBefore marks the end of the last submission. Keys observed
	// before it were pressed while the submission was in flight and must not
	// act on the outcome screen.
	ignoreKeysBefore time.Time
}

// NewMachine creates a transaction machine in the idle state.
func NewMachine(cfg Config, dir Directory, submitter Submitter, tokens TokenSource, gate InputGate, renderer display.Renderer, emitter *telemetry.Emitter, logger *slog.Logger) *Machine {
	return &Machine{
		cfg:       cfg,
		directory: dir,
		submitter: submitter,
		tokens:    tokens,
		gate:      gate,
		renderer:  renderer,
		emitter:   emitter,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current transaction state.
func (m *Machine) State() TxnState {
	return m.state
}

// Run processes input events until ctx is canceled or events closes.
// Terminal screens auto-return to idle after the display hold; any other
// non-idle state times out back to idle after the inactivity window.
func (m *Machine) Run(ctx context.Context, events <-chan input.Event) {
	m.renderer.Render(display.View{Screen: display.ScreenIdle})

	for {
		var timeout <-chan time.Time
		var timer *time.Timer
		switch {
		case m.state == StateIdle:
			// no timer, wait for a card
		case m.state.terminal():
			timer = time.NewTimer(m.cfg.DisplayHold)
			timeout = timer.C
		default:
			timer = time.NewTimer(m.cfg.InactivityTimeout)
			timeout = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-events:
			if timer != nil {
				timer.Stop()
			}
			if !ok {
				return
			}
			m.handleEvent(ctx, ev)
		case <-timeout:
			if m.state.terminal() {
				m.logger.Debug("display hold expired", "state", m.state)
			} else {
				m.logger.Info("session timed out", "state", m.state)
			}
			m.reset()
		}
	}
}

func (m *Machine) handleEvent(ctx context.Context, ev input.Event) {
	switch ev.Kind {
	case input.KindCard:
		if m.state != StateIdle {
			m.logger.Debug("ignoring card during active session", "state", m.state)
			return
		}
		m.authenticate(ev.Tag)
	case input.KindCardError:
		if m.state != StateIdle {
			return
		}
		m.logger.Warn("card read failed", "error", ev.Err)
		m.emitter.Emit(telemetry.Failure("nfc", ev.Err))
		m.state = StateAuthFailed
		m.renderer.Render(display.View{Screen: display.ScreenCardFail, Message: "card read failed"})
	case input.KindKey:
		if !ev.At.IsZero() && ev.At.Before(m.ignoreKeysBefore) {
			m.logger.Debug("dropping key pressed during submission", "key", ev.Key)
			return
		}
		m.handleKey(ctx, ev.Key)
	}
}

// authenticate resolves a presented tag against the directory. The lookup
// is a pure in-memory read, so the intermediate states are passed through
// synchronously within one transition.
func (m *Machine) authenticate(tag models.TagID) {
	m.state = StateCardPresented
	m.state = StateAuthenticating

	user, err := m.directory.LookupByTag(tag)
	switch {
	case err == nil:
		m.session = Session{User: user, Articles: m.directory.Articles()}
		m.state = StateAuthenticated
		m.logger.Info("user authenticated", "user_id", user.ID)
		m.emitter.Emit(telemetry.UserAuthenticated(user.ID))
		m.state = StateArticleSelection
		m.renderer.Render(display.View{
			Screen:   display.ScreenArticleList,
			UserName: user.Name,
			Articles: m.session.Articles,
		})
	case errors.Is(err, directory.ErrStale):
		m.logger.Warn("denying authentication, directory too stale", "tag", tag)
		m.emitter.Emit(telemetry.AuthenticationFailed(tag, "stale directory"))
		m.state = StateAuthFailed
		m.renderer.Render(display.View{Screen: display.ScreenCardFail, Message: "service unavailable"})
	default:
		m.logger.Info("unknown tag presented", "tag", tag)
		m.emitter.Emit(telemetry.AuthenticationFailed(tag, "unknown tag"))
		m.state = StateAuthFailed
		m.renderer.Render(display.View{Screen: display.ScreenCardFail, Message: "card not recognized"})
	}
}

func (m *Machine) handleKey(ctx context.Context, key keypad.Key) {
	if m.state.terminal() {
		// any key dismisses a terminal screen early
		m.reset()
		return
	}
	if key == keypad.KeyCancel {
		if m.state != StateIdle {
			m.logger.Info("session canceled", "state", m.state)
			m.reset()
		}
		return
	}

	switch m.state {
	case StateArticleSelection:
		d, ok := key.Digit()
		if !ok || d < 1 || d > len(m.session.Articles) {
			return
		}
		m.session.Article = m.session.Articles[d-1]
		m.session.Quantity = 1
		m.state = StateQuantityEntry
		m.renderQuantity()
	case StateQuantityEntry:
		if key == keypad.KeyEnter {
			m.state = StateConfirm
			m.renderer.Render(display.View{
				Screen:   display.ScreenConfirm,
				UserName: m.session.User.Name,
				Article:  m.session.Article,
				Quantity: m.session.Quantity,
				Total:    m.total(),
			})
			return
		}
		d, ok := key.Digit()
		if !ok || d < 1 || d > m.cfg.MaxQuantity {
			return
		}
		m.session.Quantity = d
		m.renderQuantity()
	case StateConfirm:
		if key == keypad.KeyEnter {
			m.submit(ctx)
		}
	}
}

// submit builds the purchase request exactly once and drives the submitter.
// Keypad input is gated off for the duration; the request is not
// cancellable once started.
func (m *Machine) submit(ctx context.Context) {
	req := models.PurchaseRequest{
		UserID:     m.session.User.ID,
		ArticleID:  m.session.Article.ID,
		Quantity:   m.session.Quantity,
		TotalPrice: m.total(),
		Token:      m.tokens.Next(),
		ClientTime: time.Now(),
	}
	m.session.Request = &req
	m.state = StateSubmitting
	m.renderer.Render(display.View{
		Screen:   display.ScreenSubmitting,
		Article:  m.session.Article,
		Quantity: m.session.Quantity,
		Total:    req.TotalPrice,
	})

	m.gate.Suspend()
	outcome := m.submitter.Submit(ctx, req)
	m.gate.Resume()
	// keys buffered before the gate closed must not dismiss the outcome
	m.ignoreKeysBefore = time.Now()

	switch outcome.Status {
	case models.OutcomeAccepted:
		m.emitter.Emit(telemetry.ArticlePurchased(req.UserID, req.ArticleID, req.Quantity, req.TotalPrice))
		m.state = StateSuccess
		m.renderer.Render(display.View{
			Screen:   display.ScreenSuccess,
			Article:  m.session.Article,
			Quantity: m.session.Quantity,
			Total:    req.TotalPrice,
		})
	default:
		m.emitter.Emit(telemetry.Failure("purchase", errors.New(outcome.Reason)))
		message := "purchase failed"
		if outcome.Status == models.OutcomeRejected {
			message = "purchase refused"
		}
		m.state = StateSubmitFailed
		m.renderer.Render(display.View{Screen: display.ScreenFailure, Message: message})
	}
}

func (m *Machine) renderQuantity() {
	m.renderer.Render(display.View{
		Screen:   display.ScreenQuantityPrompt,
		UserName: m.session.User.Name,
		Article:  m.session.Article,
		Quantity: m.session.Quantity,
		Total:    m.total(),
	})
}

func (m *Machine) total() int64 {
	return int64(m.session.Quantity) * m.session.Article.Price
}

// reset discards the session and returns to idle.
func (m *Machine) reset() {
	m.session = Session{}
	m.state = StateIdle
	m.renderer.Render(display.View{Screen: display.ScreenIdle})
}
