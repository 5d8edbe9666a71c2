package ui

import "github.com/zargony/touch-n-drink/internal/models"

// Session is the live transaction. Exactly one session exists at a time,
// created when a card is presented from idle and discarded on cancel,
// timeout or a terminal state. The session belongs exclusively to the
// machine's run loop; no other goroutine touches it.
type Session struct {
	User     models.User
	Articles []models.Article
	Article  models.Article
	Quantity int

	// Request is built exactly once when the user confirms. All submission
	// attempts reuse it verbatim, including the idempotency token.
	Request *models.PurchaseRequest
}
