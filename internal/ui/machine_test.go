package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zargony/touch-n-drink/internal/directory"
	"github.com/zargony/touch-n-drink/internal/display"
	"github.com/zargony/touch-n-drink/internal/input"
	"github.com/zargony/touch-n-drink/internal/keypad"
	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/telemetry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	alice = models.User{ID: 42, Name: "Alice", TagIDs: []models.TagID{"04a1b2c3"}}
	cola  = models.Article{ID: "1", Name: "Cola", Price: 150}
	water = models.Article{ID: "2", Name: "Water", Price: 100}
)

type fixture struct {
	dir       *DirectoryMock
	submitter *SubmitterMock
	tokens    *TokenSourceMock
	gate      *InputGateMock
	renderer  *display.RendererMock
	views     []display.View
	machine   *Machine
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		dir: &DirectoryMock{
			LookupByTagFunc: func(tag models.TagID) (models.User, error) {
				if alice.HasTag(tag) {
					return alice, nil
				}
				return models.User{}, directory.ErrUnknownTag
			},
			ArticlesFunc: func() []models.Article {
				return []models.Article{cola, water}
			},
		},
		submitter: &SubmitterMock{
			SubmitFunc: func(ctx context.Context, req models.PurchaseRequest) models.Outcome {
				return models.Outcome{Status: models.OutcomeAccepted}
			},
		},
		tokens: &TokenSourceMock{
			NextFunc: func() string { return "boot-1" },
		},
		gate: &InputGateMock{
			SuspendFunc: func() {},
			ResumeFunc:  func() {},
		},
	}
	f.renderer = &display.RendererMock{
		RenderFunc: func(view display.View) {
			f.views = append(f.views, view)
		},
	}
	emitter := telemetry.NewEmitter(nil, discardLogger())
	f.machine = NewMachine(cfg, f.dir, f.submitter, f.tokens, f.gate, f.renderer, emitter, discardLogger())
	return f
}

func defaultConfig() Config {
	return Config{MaxQuantity: 9, InactivityTimeout: 30 * time.Second, DisplayHold: 5 * time.Second}
}

func (f *fixture) card(tag models.TagID) {
	f.machine.handleEvent(context.Background(), input.Event{Kind: input.KindCard, Tag: tag})
}

func (f *fixture) key(k keypad.Key) {
	f.machine.handleEvent(context.Background(), input.Event{Kind: input.KindKey, Key: k})
}

func (f *fixture) keyAt(k keypad.Key, at time.Time) {
	f.machine.handleEvent(context.Background(), input.Event{Kind: input.KindKey, Key: k, At: at})
}

func (f *fixture) lastView() display.View {
	return f.views[len(f.views)-1]
}

func TestMachine_HappyPath(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("04a1b2c3")
	assert.Equal(t, StateArticleSelection, f.machine.State())
	assert.Equal(t, display.ScreenArticleList, f.lastView().Screen)
	assert.Equal(t, "Alice", f.lastView().UserName)

	f.key('1')
	assert.Equal(t, StateQuantityEntry, f.machine.State())
	assert.Equal(t, 1, f.lastView().Quantity)
	assert.EqualValues(t, 150, f.lastView().Total)

	f.key(keypad.KeyEnter)
	assert.Equal(t, StateConfirm, f.machine.State())
	assert.EqualValues(t, 150, f.lastView().Total)

	f.key(keypad.KeyEnter)
	assert.Equal(t, StateSuccess, f.machine.State())
	assert.Equal(t, display.ScreenSuccess, f.lastView().Screen)
	assert.EqualValues(t, 150, f.lastView().Total)

	calls := f.submitter.SubmitCalls()
	require.Len(t, calls, 1)
	req := calls[0].Req
	assert.EqualValues(t, 42, req.UserID)
	assert.EqualValues(t, "1", req.ArticleID)
	assert.Equal(t, 1, req.Quantity)
	assert.EqualValues(t, 150, req.TotalPrice)
	assert.Equal(t, "boot-1", req.Token)

	// one token per confirmed session, one suspend/resume pair
	assert.Len(t, f.tokens.NextCalls(), 1)
	assert.Len(t, f.gate.SuspendCalls(), 1)
	assert.Len(t, f.gate.ResumeCalls(), 1)
}

func TestMachine_UnknownTag(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("ffffffff")

	assert.Equal(t, StateAuthFailed, f.machine.State())
	assert.Equal(t, display.ScreenCardFail, f.lastView().Screen)
	assert.Equal(t, "card not recognized", f.lastView().Message)
	assert.Empty(t, f.machine.session.User.Name)
}

func TestMachine_StaleDirectoryDeniesService(t *testing.T) {
	f := newFixture(defaultConfig())
	f.dir.LookupByTagFunc = func(tag models.TagID) (models.User, error) {
		return models.User{}, directory.ErrStale
	}

	f.card("04a1b2c3")

	assert.Equal(t, StateAuthFailed, f.machine.State())
	assert.Equal(t, "service unavailable", f.lastView().Message)
}

func TestMachine_TransientFailureNotRetried(t *testing.T) {
	// The submitter already exhausted its attempt budget; the machine must
	// not invoke it again.
	f := newFixture(defaultConfig())
	f.submitter.SubmitFunc = func(ctx context.Context, req models.PurchaseRequest) models.Outcome {
		return models.Outcome{Status: models.OutcomeTransient, Reason: "connection reset"}
	}

	f.card("04a1b2c3")
	f.key('1')
	f.key(keypad.KeyEnter)
	f.key(keypad.KeyEnter)

	assert.Equal(t, StateSubmitFailed, f.machine.State())
	assert.Equal(t, display.ScreenFailure, f.lastView().Screen)
	assert.Equal(t, "purchase failed", f.lastView().Message)
	assert.Len(t, f.submitter.SubmitCalls(), 1)
}

func TestMachine_RejectedSubmit(t *testing.T) {
	f := newFixture(defaultConfig())
	f.submitter.SubmitFunc = func(ctx context.Context, req models.PurchaseRequest) models.Outcome {
		return models.Outcome{Status: models.OutcomeRejected, Reason: "unknown article"}
	}

	f.card("04a1b2c3")
	f.key('1')
	f.key(keypad.KeyEnter)
	f.key(keypad.KeyEnter)

	assert.Equal(t, StateSubmitFailed, f.machine.State())
	assert.Equal(t, "purchase refused", f.lastView().Message)
}

func TestMachine_CancelDiscardsSession(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("04a1b2c3")
	f.key('2') // Water
	f.key(keypad.KeyEnter)
	assert.Equal(t, StateConfirm, f.machine.State())

	f.key(keypad.KeyCancel)

	assert.Equal(t, StateIdle, f.machine.State())
	assert.Equal(t, display.ScreenIdle, f.lastView().Screen)
	assert.Empty(t, f.submitter.SubmitCalls())
	assert.Empty(t, f.tokens.NextCalls())
	assert.Equal(t, Session{}, f.machine.session)
}

func TestMachine_QuantityBounds(t *testing.T) {
	f := newFixture(Config{MaxQuantity: 5, InactivityTimeout: 30 * time.Second, DisplayHold: 5 * time.Second})

	f.card("04a1b2c3")
	f.key('1')
	require.Equal(t, StateQuantityEntry, f.machine.State())
	assert.Equal(t, 1, f.machine.session.Quantity)

	f.key('0') // below range, ignored
	assert.Equal(t, 1, f.machine.session.Quantity)

	f.key('7') // above max, ignored
	assert.Equal(t, 1, f.machine.session.Quantity)

	f.key('3')
	assert.Equal(t, 3, f.machine.session.Quantity)
	assert.EqualValues(t, 450, f.lastView().Total)
}

func TestMachine_ArticleSelectionOutOfRange(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("04a1b2c3")
	f.key('9') // only two articles
	assert.Equal(t, StateArticleSelection, f.machine.State())

	f.key('2')
	assert.Equal(t, StateQuantityEntry, f.machine.State())
	assert.Equal(t, water, f.machine.session.Article)
}

func TestMachine_IgnoresCardDuringSession(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("04a1b2c3")
	f.card("04a1b2c3")

	assert.Equal(t, StateArticleSelection, f.machine.State())
	assert.Len(t, f.dir.LookupByTagCalls(), 1)
}

func TestMachine_CardReadError(t *testing.T) {
	f := newFixture(defaultConfig())

	f.machine.handleEvent(context.Background(), input.Event{
		Kind: input.KindCardError,
		Err:  errors.New("antenna fault"),
	})

	assert.Equal(t, StateAuthFailed, f.machine.State())
	assert.Equal(t, "card read failed", f.lastView().Message)
}

func TestMachine_KeyDismissesTerminalScreen(t *testing.T) {
	f := newFixture(defaultConfig())

	f.card("ffffffff")
	require.Equal(t, StateAuthFailed, f.machine.State())

	f.key(keypad.KeyEnter)

	assert.Equal(t, StateIdle, f.machine.State())
}

func TestMachine_KeysPressedDuringSubmissionIgnored(t *testing.T) {
	f := newFixture(defaultConfig())
	before := time.Now().Add(-time.Second)

	f.card("04a1b2c3")
	f.keyAt('1', before)
	f.keyAt(keypad.KeyEnter, before)
	f.keyAt(keypad.KeyEnter, before)
	require.Equal(t, StateSuccess, f.machine.State())

	// This key was buffered while the submission was in flight and must not
	// dismiss the outcome screen
	f.keyAt(keypad.KeyCancel, before)
	assert.Equal(t, StateSuccess, f.machine.State())

	// A key pressed after the outcome is shown dismisses it
	f.keyAt(keypad.KeyCancel, time.Now().Add(time.Second))
	assert.Equal(t, StateIdle, f.machine.State())
}

// collectingRenderer forwards views to a channel so Run-loop tests can
// observe transitions without racing the machine goroutine.
func collectingRenderer() (*display.RendererMock, chan display.View) {
	views := make(chan display.View, 16)
	return &display.RendererMock{
		RenderFunc: func(view display.View) {
			views <- view
		},
	}, views
}

func awaitScreen(t *testing.T, views chan display.View, screen display.Screen) display.View {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case view := <-views:
			if view.Screen == screen {
				return view
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v screen", screen)
		}
	}
}

func TestMachine_InactivityTimeout(t *testing.T) {
	f := newFixture(Config{MaxQuantity: 9, InactivityTimeout: 20 * time.Millisecond, DisplayHold: time.Hour})
	renderer, views := collectingRenderer()
	f.machine.renderer = renderer

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan input.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.machine.Run(ctx, events)
	}()

	awaitScreen(t, views, display.ScreenIdle)
	events <- input.Event{Kind: input.KindCard, Tag: "04a1b2c3"}
	awaitScreen(t, views, display.ScreenArticleList)

	// no further input: the session must time out back to idle
	awaitScreen(t, views, display.ScreenIdle)
	assert.Empty(t, f.submitter.SubmitCalls())

	cancel()
	<-done
}

func TestMachine_DisplayHoldReturnsToIdle(t *testing.T) {
	f := newFixture(Config{MaxQuantity: 9, InactivityTimeout: time.Hour, DisplayHold: 20 * time.Millisecond})
	renderer, views := collectingRenderer()
	f.machine.renderer = renderer

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan input.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.machine.Run(ctx, events)
	}()

	awaitScreen(t, views, display.ScreenIdle)
	events <- input.Event{Kind: input.KindCard, Tag: "ffffffff"}
	awaitScreen(t, views, display.ScreenCardFail)
	awaitScreen(t, views, display.ScreenIdle)

	cancel()
	<-done
}
