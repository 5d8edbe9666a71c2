package purchase

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// TokenSource generates idempotency tokens: a boot-time salt plus a
// monotonic counter. Tokens are unique per session and stable across all
// retry attempts of one submission.
type TokenSource struct {
	bootID string
	seq    atomic.Uint64
}

// NewTokenSource creates a token source with a fresh boot-time salt.
func NewTokenSource() *TokenSource {
	return &TokenSource{bootID: uuid.NewString()}
}

// Next returns a new unique idempotency token.
func (t *TokenSource) Next() string {
	return fmt.Sprintf("%s-%d", t.bootID, t.seq.Add(1))
}
