package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/zargony/touch-n-drink/internal/billing"
	"github.com/zargony/touch-n-drink/internal/models"
)

// Submitter posts purchases to the billing service, retrying transient
// failures with exponential backoff. The caller assigns one idempotency
// token per purchase before submitting; the same token is sent on every
// attempt so the service can deduplicate double bookings.
type Submitter struct {
	client   billing.API
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

// NewSubmitter creates a submitter performing at most attempts tries per
// purchase, waiting backoff (doubled each retry) between tries.
func NewSubmitter(client billing.API, attempts int, backoff time.Duration, logger *slog.Logger) *Submitter {
	if attempts < 1 {
		attempts = 1
	}
	return &Submitter{
		client:   client,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
	}
}

// Submit posts the purchase and reports the final outcome. Transient
// failures (network errors, 5xx responses) are retried up to the configured
// attempt budget; rejections (4xx responses) are returned immediately and
// never retried.
func (s *Submitter) Submit(ctx context.Context, req models.PurchaseRequest) models.Outcome {
	b := retry.WithMaxRetries(uint64(s.attempts-1), retry.NewExponential(s.backoff))

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := s.client.SubmitPurchase(ctx, req)
		if err == nil {
			return nil
		}
		if billing.IsTransient(err) {
			s.logger.Warn("purchase attempt failed, will retry",
				"attempt", attempt, "token", req.Token, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		s.logger.Info("purchase accepted",
			"user_id", req.UserID, "article_id", req.ArticleID,
			"quantity", req.Quantity, "total_price", req.TotalPrice,
			"token", req.Token, "attempts", attempt)
		return models.Outcome{Status: models.OutcomeAccepted}
	}

	if !billing.IsTransient(err) {
		s.logger.Error("purchase rejected",
			"user_id", req.UserID, "article_id", req.ArticleID,
			"token", req.Token, "error", err)
		return models.Outcome{Status: models.OutcomeRejected, Reason: err.Error()}
	}
	s.logger.Error("purchase failed after retries",
		"user_id", req.UserID, "article_id", req.ArticleID,
		"token", req.Token, "attempts", attempt, "error", err)
	return models.Outcome{Status: models.OutcomeTransient, Reason: err.Error()}
}
