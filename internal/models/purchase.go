package models

import "time"

// PurchaseRequest is the wire-bound purchase of one confirmed session.
// It is built exactly once when the user confirms and retried verbatim;
// the idempotency token lets the billing service recognize repeated
// attempts as one logical purchase.
type PurchaseRequest struct {
	UserID     UserID    `json:"user_id"`
	ArticleID  ArticleID `json:"article_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice int64     `json:"total_price"` // quantity × unit price, in cents
	Token      string    `json:"token"`       // idempotency token
	ClientTime time.Time `json:"client_time"`
}

// OutcomeStatus classifies the result of a submission attempt.
type OutcomeStatus int

const (
	// OutcomeAccepted means the purchase was stored by the billing service.
	OutcomeAccepted OutcomeStatus = iota
	// OutcomeRejected means the request was refused and must not be retried.
	OutcomeRejected
	// OutcomeTransient means the attempt failed in a way that may succeed
	// on retry (timeout, connection reset, 5xx response).
	OutcomeTransient
)

// String returns a human readable status name.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransient:
		return "transient failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of submitting a purchase request.
type Outcome struct {
	Status OutcomeStatus
	Reason string
}
