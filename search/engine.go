package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/lexical"
	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// deadlineCheckStride is how many records the scoring loop processes between
// deadline checks.
const deadlineCheckStride = 256

// Engine answers queries over the push-fed record index and owns the saved
// searches, the bounded query history and the usage analytics.
// All methods are safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	opts    Options
	index   *Index
	saved   map[string]*SavedSearch
	history []HistoryEntry
	stats   *analytics
	logger  *slog.Logger
}

// New creates a search engine with an empty index.
func New(optFns ...func(*Options)) *Engine {
	opts := DefaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultOptions().MaxHistory
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultOptions().MaxSuggestions
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		opts:   opts,
		index:  NewIndex(),
		saved:  make(map[string]*SavedSearch),
		stats:  newAnalytics(),
		logger: opts.Logger,
	}
}

// UpdateIndex adds or replaces records in the index. The index is push-fed:
// the engine never pulls from the cache, so the producer is responsible for
// keeping the two stores reasonably in sync.
func (e *Engine) UpdateIndex(records []model.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, rec := range records {
		e.index.Upsert(rec)
	}
}

// RemoveFromIndex drops records by id. Unknown ids are ignored.
func (e *Engine) RemoveFromIndex(ids []int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range ids {
		e.index.Remove(id)
	}
}

// IndexLen returns the number of indexed records.
func (e *Engine) IndexLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Len()
}

// Search runs the fixed pipeline — score, filter, facet, sort, paginate,
// suggest — against the index. On success it appends to the query history
// and updates the analytics. A deadline overrun fails with ErrTimeout and
// commits nothing.
func (e *Engine) Search(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	timeout := e.opts.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining < timeout {
			timeout = max(remaining, 0)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.runLocked(ctx, q, start, timeout)
	if err != nil {
		e.logger.Warn("search failed", "query", q.Text, "error", err)
		return nil, err
	}

	e.commitLocked(q, result, start)
	e.logger.Debug("search completed",
		"query", q.Text, "total", result.TotalCount, "took", result.Took)
	return result, nil
}

func (e *Engine) runLocked(ctx context.Context, q Query, start time.Time, timeout time.Duration) (*Result, error) {
	matches, err := e.scoreLocked(ctx, q, timeout)
	if err != nil {
		return nil, err
	}

	matches = applyFilters(matches, q.Filters, e.index)
	if err := checkDeadline(ctx, timeout); err != nil {
		return nil, err
	}

	facets := computeFacets(matches, e.index, start)
	if err := checkDeadline(ctx, timeout); err != nil {
		return nil, err
	}

	applySort(matches, q.Sort)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := paginate(matches, q.Page, perPage)

	return &Result{
		Records:     page,
		TotalCount:  len(matches),
		Took:        time.Since(start),
		Query:       q,
		Facets:      facets,
		Suggestions: relatedTerms(matches, q.Text, e.opts.MaxSuggestions),
	}, nil
}

// scoreLocked establishes the relevance order. Without query text every
// indexed record passes through in ascending-id order; with text, records
// are scored per token and zero-scorers are dropped.
func (e *Engine) scoreLocked(ctx context.Context, q Query, timeout time.Duration) ([]model.Record, error) {
	all := e.index.All()

	scorer := lexical.NewScorer(q.Text, e.opts.EnableFuzzy)
	if scorer.Empty() {
		return all, checkDeadline(ctx, timeout)
	}

	type scored struct {
		rec   model.Record
		score float64
	}
	hits := make([]scored, 0, len(all))
	for i, rec := range all {
		if i%deadlineCheckStride == 0 {
			if err := checkDeadline(ctx, timeout); err != nil {
				return nil, err
			}
		}
		s := scorer.Score(lexical.Doc{
			Name:        rec.Name,
			Description: rec.Description,
			Searchable:  rec.SearchableText(),
		})
		if s > 0 {
			hits = append(hits, scored{rec: rec, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].rec.ID < hits[j].rec.ID
	})

	matches := make([]model.Record, len(hits))
	for i, h := range hits {
		matches[i] = h.rec
	}
	return matches, checkDeadline(ctx, timeout)
}

// checkDeadline translates context expiry into the typed timeout error.
// timeout is the effective bound for this call: the configured engine
// timeout, capped by any tighter caller deadline. Caller cancellation
// passes through untranslated.
func checkDeadline(ctx context.Context, timeout time.Duration) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &ErrTimeout{Timeout: timeout, cause: err}
	default:
		return err
	}
}

// commitLocked records the search's side effects: the bounded
// most-recent-first history and the analytics counters.
func (e *Engine) commitLocked(q Query, result *Result, start time.Time) {
	entry := HistoryEntry{Query: q, Timestamp: start, ResultCount: result.TotalCount}
	e.history = append([]HistoryEntry{entry}, e.history...)
	if len(e.history) > e.opts.MaxHistory {
		e.history = e.history[:e.opts.MaxHistory]
	}

	e.stats.record(strings.TrimSpace(q.Text), result.TotalCount, result.Took, start)
}

// History returns the query history, most recent first.
func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory drops the query history. Analytics are unaffected.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

// Analytics returns a point-in-time view of search usage.
func (e *Engine) Analytics() Analytics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.snapshot()
}

// Suggestions unions case-insensitive prefix matches on partial from the
// query history, the popular-query table and the indexed record names,
// in that precedence, deduplicated and capped at limit. limit <= 0 falls
// back to the configured maximum.
func (e *Engine) Suggestions(partial string, limit int) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if limit <= 0 {
		limit = e.opts.MaxSuggestions
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(candidate string) {
		if len(out) >= limit {
			return
		}
		lower := strings.ToLower(candidate)
		if !strings.HasPrefix(lower, partial) {
			return
		}
		if _, dup := seen[lower]; dup {
			return
		}
		seen[lower] = struct{}{}
		out = append(out, candidate)
	}

	for _, h := range e.history {
		add(h.Query.Text)
	}
	for _, qc := range e.stats.snapshot().PopularQueries {
		add(qc.Query)
	}
	for _, rec := range e.index.All() {
		add(rec.Name)
	}
	return out
}
