// Package directory maintains the cached set of authorized users and
// purchasable articles. The cache holds exactly one immutable snapshot at a
// time; a refresh builds a complete new snapshot and swaps it in atomically,
// so concurrent readers never observe a partial update. Lookups fail closed
// once the snapshot is older than the configured hard TTL.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/zargony/touch-n-drink/internal/billing"
	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/storage"
)

// Config holds the cache's refresh policy and article selection.
type Config struct {
	// ArticleIDs lists the purchasable articles in display order. Articles
	// the service knows but this list doesn't are not offered.
	ArticleIDs []string

	// HardTTL is the maximum snapshot age before lookups fail closed.
	HardTTL time.Duration

	// RefreshInterval is the background refresh interval.
	RefreshInterval time.Duration
}

// state is one immutable snapshot plus its derived lookup index.
type state struct {
	snapshot models.Snapshot
	byTag    map[models.TagID]models.User
}

// Cache owns the current directory snapshot
type Cache struct {
	client binding
	store  storage.SnapshotStore
	cfg    Config
	logger *slog.Logger

	current    atomic.Pointer[state]
	refreshing atomic.Bool
	now        func() time.Time
}

// binding is the subset of the billing API the cache fetches from.
type binding interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchArticles(ctx context.Context) ([]models.Article, error)
}

var _ binding = (billing.API)(nil)

// New creates a new directory cache. The cache starts empty (and therefore
// denying); call WarmStart and/or Refresh to populate it.
func New(client billing.API, store storage.SnapshotStore, cfg Config, logger *slog.Logger) *Cache {
	c := &Cache{
		client: client,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	c.current.Store(newState(models.Snapshot{}))
	return c
}

// newState builds the derived tag index for a snapshot.
func newState(snapshot models.Snapshot) *state {
	byTag := make(map[models.TagID]models.User)
	for _, user := range snapshot.Users {
		for _, tag := range user.TagIDs {
			byTag[tag] = user
		}
	}
	return &state{snapshot: snapshot, byTag: byTag}
}

// WarmStart restores the last persisted snapshot, if any. The restored
// snapshot keeps its original LastRefreshed, so the hard TTL is enforced
// across power cycles. A missing snapshot is not an error.
func (c *Cache) WarmStart(ctx context.Context) error {
	snapshot, err := c.store.LoadSnapshot(ctx)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		c.logger.Info("directory: no persisted snapshot, starting cold")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	c.current.Store(newState(*snapshot))
	c.logger.Info("directory: restored persisted snapshot",
		"generation", snapshot.Generation,
		"age", c.now().Sub(snapshot.LastRefreshed).Round(time.Second),
		"users", len(snapshot.Users),
		"articles", len(snapshot.Articles))
	return nil
}

// LookupByTag returns the user the given tag is bound to. Never blocks and
// never triggers a fetch. Returns ErrStale if the snapshot is older than
// the hard TTL (fail closed), ErrUnknownTag if the tag is not known.
func (c *Cache) LookupByTag(tag models.TagID) (models.User, error) {
	s := c.current.Load()
	if s.snapshot.Age(c.now()) > c.cfg.HardTTL {
		return models.User{}, ErrStale
	}
	user, ok := s.byTag[tag]
	if !ok {
		return models.User{}, ErrUnknownTag
	}
	return user, nil
}

// Articles returns the current snapshot's article list in display order.
func (c *Cache) Articles() []models.Article {
	return c.current.Load().snapshot.Articles
}

// LastRefreshed returns the time of the last successful refresh.
func (c *Cache) LastRefreshed() time.Time {
	return c.current.Load().snapshot.LastRefreshed
}

// Generation returns the monotonic generation counter of the snapshot.
func (c *Cache) Generation() uint64 {
	return c.current.Load().snapshot.Generation
}

// Size returns the number of users and articles of the current snapshot.
func (c *Cache) Size() (users, articles int) {
	s := c.current.Load()
	return len(s.snapshot.Users), len(s.snapshot.Articles)
}

// Refresh fetches users and articles and atomically replaces the snapshot.
// All-or-nothing: if either fetch fails, the previous snapshot stays live.
// Only one refresh runs at a time; a call while one is in flight is a no-op.
func (c *Cache) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.logger.Debug("directory: refresh already in flight, skipping")
		return nil
	}
	defer c.refreshing.Store(false)

	c.logger.Info("directory: refreshing users and articles")

	users, err := c.client.FetchUsers(ctx)
	if err != nil {
		return classifyRefreshErr(err)
	}
	articles, err := c.client.FetchArticles(ctx)
	if err != nil {
		return classifyRefreshErr(err)
	}

	previous := c.current.Load()
	snapshot := models.Snapshot{
		Users:         users,
		Articles:      selectArticles(articles, c.cfg.ArticleIDs),
		LastRefreshed: c.now(),
		Generation:    previous.snapshot.Generation + 1,
	}
	next := newState(snapshot)
	c.current.Store(next)

	c.logger.Info("directory: refreshed",
		"generation", snapshot.Generation,
		"users", len(snapshot.Users),
		"tags", len(next.byTag),
		"articles", len(snapshot.Articles))

	// Persistence is best effort; the live snapshot is already swapped in
	if err := c.store.SaveSnapshot(ctx, &snapshot); err != nil {
		c.logger.Warn("directory: failed to persist snapshot", "error", err)
	}
	return nil
}

// Run refreshes the directory on the configured interval until ctx is
// cancelled. Failures are logged and retried on the next tick; they never
// propagate into an active session.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Error("directory: scheduled refresh failed", "error", err)
			}
		}
	}
}

// selectArticles filters and orders articles by the configured id list.
// An empty list keeps the service's order.
func selectArticles(articles []models.Article, ids []string) []models.Article {
	if len(ids) == 0 {
		return articles
	}
	byID := make(map[models.ArticleID]models.Article, len(articles))
	for _, article := range articles {
		byID[article.ID] = article
	}
	selected := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		if article, ok := byID[models.ArticleID(id)]; ok {
			selected = append(selected, article)
		}
	}
	return selected
}

// classifyRefreshErr maps billing client failures onto the refresh error
// taxonomy.
func classifyRefreshErr(err error) error {
	switch {
	case errors.Is(err, billing.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrRefreshUnauthorized, err)
	case errors.Is(err, billing.ErrMalformedResponse):
		return fmt.Errorf("%w: %v", ErrRefreshProtocol, err)
	default:
		return fmt.Errorf("%w: %v", ErrRefreshNetwork, err)
	}
}
