package display

import (
	"fmt"

	"github.com/zargony/touch-n-drink/internal/models"
)

//go:generate moq -out display_mock.go . Renderer

// Renderer presents the current view to the user. Implementations range
// from a character LCD to the line-oriented development console.
type Renderer interface {
	Render(view View)
}

// Screen identifies which screen a view describes.
type Screen int

const (
	// ScreenIdle is the waiting screen shown between transactions.
	ScreenIdle Screen = iota
	// ScreenCardFail reports a failed card authentication.
	ScreenCardFail
	// ScreenArticleList offers the purchasable articles.
	ScreenArticleList
	// ScreenQuantityPrompt asks for the number of units.
	ScreenQuantityPrompt
	// ScreenConfirm shows the order summary awaiting confirmation.
	ScreenConfirm
	// ScreenSubmitting is shown while the purchase is being posted.
	ScreenSubmitting
	// ScreenSuccess confirms a stored purchase.
	ScreenSuccess
	// ScreenFailure reports a failed or rejected purchase.
	ScreenFailure
)

// String returns a human readable screen name.
func (s Screen) String() string {
	switch s {
	case ScreenIdle:
		return "idle"
	case ScreenCardFail:
		return "card failure"
	case ScreenArticleList:
		return "article list"
	case ScreenQuantityPrompt:
		return "quantity prompt"
	case ScreenConfirm:
		return "confirm"
	case ScreenSubmitting:
		return "submitting"
	case ScreenSuccess:
		return "success"
	case ScreenFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// View is everything a renderer needs to draw one screen. Fields beyond
// Screen are populated only where meaningful.
type View struct {
	Screen   Screen
	UserName string
	Articles []models.Article
	Article  models.Article
	Quantity int
	Total    int64
	Message  string
}

// FormatPrice renders a price in cents as a human readable Euro amount.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d EUR", sign, cents/100, cents%100)
}
