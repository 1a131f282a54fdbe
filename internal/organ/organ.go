// Package organ holds the fixed anatomical regions of the human view and a
// lazily filled cache of their query results.
package organ

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/query"
)

type ID string

const (
	Brain ID = "brain"
	Heart ID = "heart"
)

// Region is a clickable area of the body outline. Coordinates are fractions
// of the outline's width and height.
type Region struct {
	ID        ID      `json:"id" yaml:"id"`
	Label     string  `json:"label" yaml:"label"`
	Anatomy   string  `json:"anatomy" yaml:"anatomy"`
	XPct      float64 `json:"x_pct" yaml:"x_pct"`
	YPct      float64 `json:"y_pct" yaml:"y_pct"`
	RadiusPct float64 `json:"r_pct" yaml:"r_pct"`
}

// Query returns the static SPARQL text for the region.
func (r Region) Query() string {
	return query.Organ(r.Anatomy)
}

var regions = []Region{
	{ID: Brain, Label: "Brain", Anatomy: query.AnatomyBrain, XPct: 0.50, YPct: 0.07, RadiusPct: 0.03},
	{ID: Heart, Label: "Heart", Anatomy: query.AnatomyHeart, XPct: 0.50, YPct: 0.44, RadiusPct: 0.025},
}

// Regions returns the regions in display order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

func Lookup(id ID) (Region, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// UnknownError is returned for an id outside the registry.
type UnknownError struct {
	ID ID
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown organ %q", string(e.ID))
}

// Fetcher runs a query and returns normalized rows.
type Fetcher interface {
	Rows(ctx context.Context, query string) ([]models.ResultRow, error)
}

// Cache memoizes organ rows for the life of the process. Entries are never
// evicted and failed fetches are not stored. Concurrent first lookups of the
// same organ may each fetch; the later write replaces an identical result.
type Cache struct {
	fetcher Fetcher
	log     *zap.Logger

	mu   sync.RWMutex
	rows map[ID][]models.ResultRow
}

func NewCache(fetcher Fetcher, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		fetcher: fetcher,
		log:     log,
		rows:    make(map[ID][]models.ResultRow),
	}
}

// Rows returns the organ's rows, fetching them on first use.
func (c *Cache) Rows(ctx context.Context, id ID) ([]models.ResultRow, error) {
	region, ok := Lookup(id)
	if !ok {
		return nil, &UnknownError{ID: id}
	}

	if rows, ok := c.Cached(id); ok {
		return rows, nil
	}

	rows, err := c.fetcher.Rows(ctx, region.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s rows: %w", region.Label, err)
	}

	c.mu.Lock()
	c.rows[id] = rows
	c.mu.Unlock()

	c.log.Debug("organ cached", zap.String("organ", string(id)), zap.Int("rows", len(rows)))
	return rows, nil
}

// Cached reports the stored rows without fetching.
func (c *Cache) Cached(id ID) ([]models.ResultRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.rows[id]
	return rows, ok
}

// WarmResult is the outcome of prefetching one organ.
type WarmResult struct {
	ID   ID
	Rows int
	Err  error
}

// Warm fetches every region not yet cached, at most limit at a time. Failures
// are reported per organ and never cancel the other fetches.
func (c *Cache) Warm(ctx context.Context, limit int) []WarmResult {
	if limit < 1 {
		limit = len(regions)
	}

	all := Regions()
	results := make([]WarmResult, len(all))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, region := range all {
		g.Go(func() error {
			rows, err := c.Rows(gctx, region.ID)
			results[i] = WarmResult{ID: region.ID, Rows: len(rows), Err: err}
			if err != nil {
				c.log.Warn("organ warm-up failed", zap.String("organ", string(region.ID)), zap.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
