package search

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SaveSearch stores a named query for reuse and returns the stored copy.
func (e *Engine) SaveSearch(name string, q Query, public bool) SavedSearch {
	e.mu.Lock()
	defer e.mu.Unlock()

	ss := &SavedSearch{
		ID:        uuid.NewString(),
		Name:      name,
		Query:     q,
		CreatedAt: time.Now(),
		Public:    public,
	}
	e.saved[ss.ID] = ss
	e.logger.Debug("search saved", "id", ss.ID, "name", name)
	return *ss
}

// SavedSearches returns every saved search, newest first.
func (e *Engine) SavedSearches() []SavedSearch {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]SavedSearch, 0, len(e.saved))
	for _, ss := range e.saved {
		out = append(out, *ss)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ExecuteSavedSearch bumps the saved search's usage bookkeeping, then re-runs
// the full pipeline with its embedded query. An unknown id fails with
// ErrSavedSearchNotFound; a pipeline failure propagates like any other
// search failure.
func (e *Engine) ExecuteSavedSearch(ctx context.Context, id string) (*Result, error) {
	e.mu.Lock()
	ss, ok := e.saved[id]
	if !ok {
		e.mu.Unlock()
		return nil, &ErrSavedSearchNotFound{ID: id}
	}
	ss.LastUsedAt = time.Now()
	ss.UseCount++
	q := ss.Query
	e.mu.Unlock()

	return e.Search(ctx, q)
}

// DeleteSavedSearch removes a saved search. An unknown id fails with
// ErrSavedSearchNotFound.
func (e *Engine) DeleteSavedSearch(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.saved[id]; !ok {
		return &ErrSavedSearchNotFound{ID: id}
	}
	delete(e.saved, id)
	return nil
}
