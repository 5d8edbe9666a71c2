// Package sim is a line-oriented stand-in for the terminal hardware: stdin
// lines act as card taps and key presses, views print to stdout. It exists
// for development and integration testing on a workstation without the
// reader, keypad and display peripherals.
package sim

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zargony/touch-n-drink/internal/display"
	"github.com/zargony/touch-n-drink/internal/keypad"
	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/nfc"
)

// Terminal simulates the card reader, keypad and display in one console.
// A single key line ("1".."9", "0", "*", "#") is a key press; any longer
// line is taken as a tag id and presented as a card tap.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	keys chan keypad.Event
	tags chan models.TagID
}

var _ nfc.Reader = (*Terminal)(nil)
var _ display.Renderer = (*Terminal)(nil)

// NewTerminal creates a simulated terminal reading commands from in and
// rendering views to out.
func NewTerminal(in io.Reader, out io.Writer, logger *slog.Logger) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		logger: logger,
		keys:   make(chan keypad.Event, 8),
		tags:   make(chan models.TagID),
	}
}

// Keys returns the simulated keypad event stream.
func (t *Terminal) Keys() <-chan keypad.Event {
	return t.keys
}

// ReadTag blocks until a card tap is entered or ctx is canceled.
func (t *Terminal) ReadTag(ctx context.Context) (models.TagID, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case tag := <-t.tags:
		return tag, nil
	}
}

// Run reads input lines until ctx is canceled or in reaches EOF, then
// closes the key stream.
func (t *Terminal) Run(ctx context.Context) {
	defer close(t.keys)

	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := t.dispatch(ctx, line); err != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		t.logger.Error("failed to read console input", "error", err)
	}
}

func (t *Terminal) dispatch(ctx context.Context, line string) error {
	if len(line) == 1 && strings.ContainsAny(line, "0123456789*#") {
		key := keypad.Key(line[0])
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t.keys <- keypad.Event{Key: key, Edge: keypad.EdgeDown}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t.keys <- keypad.Event{Key: key, Edge: keypad.EdgeUp}:
		}
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case t.tags <- models.TagID(strings.ToLower(line)):
		return nil
	}
}

// Render prints the view as console lines.
func (t *Terminal) Render(view display.View) {
	switch view.Screen {
	case display.ScreenIdle:
		fmt.Fprintln(t.out, "-- ready, present card (enter a tag id) --")
	case display.ScreenCardFail:
		fmt.Fprintf(t.out, "!! %s\n", view.Message)
	case display.ScreenArticleList:
		fmt.Fprintf(t.out, "hello %s, select article:\n", view.UserName)
		for i, article := range view.Articles {
			fmt.Fprintf(t.out, "  %d) %s  %s\n", i+1, article.Name, display.FormatPrice(article.Price))
		}
	case display.ScreenQuantityPrompt:
		fmt.Fprintf(t.out, "%s x%d = %s  (digit changes amount, # confirms, * cancels)\n",
			view.Article.Name, view.Quantity, display.FormatPrice(view.Total))
	case display.ScreenConfirm:
		fmt.Fprintf(t.out, "confirm %dx %s = %s?  (# submits, * cancels)\n",
			view.Quantity, view.Article.Name, display.FormatPrice(view.Total))
	case display.ScreenSubmitting:
		fmt.Fprintln(t.out, ".. submitting ..")
	case display.ScreenSuccess:
		fmt.Fprintf(t.out, "ok, enjoy! %dx %s booked (%s)\n",
			view.Quantity, view.Article.Name, display.FormatPrice(view.Total))
	case display.ScreenFailure:
		fmt.Fprintf(t.out, "!! %s\n", view.Message)
	}
}
