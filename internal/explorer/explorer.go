// Package explorer holds the application state of one exploration session:
// the current row set, the active search and the organ cache.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/query"
	"github.com/protscope/core/internal/views"
)

// ErrStale is returned when a response arrives after a newer request was
// dispatched. The state is left untouched.
var ErrStale = errors.New("response superseded by a newer request")

// State is a snapshot of the session. Search is nil after a reset.
type State struct {
	Seq    uint64                `json:"seq" yaml:"seq"`
	Rows   []models.ResultRow    `json:"rows" yaml:"rows"`
	Search *models.SearchContext `json:"search,omitempty" yaml:"search,omitempty"`
	Loaded bool                  `json:"loaded" yaml:"loaded"`
}

type Controller struct {
	fetcher organ.Fetcher
	organs  *organ.Cache
	log     *zap.Logger

	mu         sync.Mutex
	dispatched uint64
	state      State
}

func New(fetcher organ.Fetcher, organs *organ.Cache, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if organs == nil {
		organs = organ.NewCache(fetcher, log)
	}
	return &Controller{fetcher: fetcher, organs: organs, log: log}
}

// Reset runs the default query and clears the active search.
func (c *Controller) Reset(ctx context.Context) (State, error) {
	return c.run(ctx, query.Default(), nil)
}

// Search validates sc and replaces the row set with its results. A blank term
// fails with query.ErrEmptyTerm before anything is dispatched.
func (c *Controller) Search(ctx context.Context, sc models.SearchContext) (State, error) {
	q, err := query.Build(sc)
	if err != nil {
		return c.State(), err
	}
	return c.run(ctx, q, &sc)
}

func (c *Controller) run(ctx context.Context, q string, sc *models.SearchContext) (State, error) {
	c.mu.Lock()
	c.dispatched++
	seq := c.dispatched
	c.mu.Unlock()

	rows, err := c.fetcher.Rows(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.dispatched {
		c.log.Debug("discarding stale response", zap.Uint64("seq", seq), zap.Uint64("latest", c.dispatched))
		return c.state, ErrStale
	}
	if err != nil {
		return c.state, fmt.Errorf("query failed: %w", err)
	}

	c.state = State{Seq: seq, Rows: rows, Search: sc, Loaded: true}
	c.log.Info("rows loaded",
		zap.Uint64("seq", seq),
		zap.Int("rows", len(rows)),
		zap.Bool("search", sc != nil),
	)
	return c.state, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Render builds the view model of the current rows without refetching.
func (c *Controller) Render(view models.View) (any, error) {
	s := c.State()
	return views.Render(view, s.Rows, s.Search)
}

// CategoryDetail describes one bubble of the current rows.
func (c *Controller) CategoryDetail(label string) views.CategoryDetailView {
	return views.CategoryDetail(c.State().Rows, label)
}

// Organ returns the panel for id, fetching its rows on first use. It does
// not touch the session rows.
func (c *Controller) Organ(ctx context.Context, id organ.ID) (views.OrganPanelView, error) {
	region, ok := organ.Lookup(id)
	if !ok {
		return views.OrganPanelView{}, &organ.UnknownError{ID: id}
	}

	rows, err := c.organs.Rows(ctx, id)
	if err != nil {
		return views.OrganPanelView{}, err
	}
	return views.OrganPanel(region, rows), nil
}

func (c *Controller) Organs() *organ.Cache {
	return c.organs
}
