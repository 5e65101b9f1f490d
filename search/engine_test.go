package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

func testRecord(id, instance int64, name string, mut ...func(*model.Record)) model.Record {
	now := time.Now()
	rec := model.Record{
		ID:             id,
		InstanceID:     instance,
		Name:           name,
		Visibility:     model.VisibilityPublic,
		DefaultBranch:  "main",
		CreatedAt:      now.Add(-90 * 24 * time.Hour),
		UpdatedAt:      now.Add(-time.Hour),
		LastActivityAt: now.Add(-time.Hour),
	}
	for _, fn := range mut {
		fn(&rec)
	}
	return rec
}

func newTestEngine(recs ...model.Record) *Engine {
	e := New()
	e.UpdateIndex(recs)
	return e
}

func TestSearch_TextScoring(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "alpha-api", func(r *model.Record) { r.Description = "api gateway" }),
		testRecord(2, 1, "beta-api"),
		testRecord(3, 1, "frontend"),
	)

	res, err := e.Search(context.Background(), Query{Text: "api"})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)

	// alpha-api matches in both name and description, so it outranks
	// beta-api; frontend scores zero and is dropped.
	assert.Equal(t, "alpha-api", res.Records[0].Name)
	assert.Equal(t, "beta-api", res.Records[1].Name)
}

func TestSearch_PrefixBonus(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "tools-api"),
		testRecord(2, 1, "api-tools"),
	)

	res, err := e.Search(context.Background(), Query{Text: "api"})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)
	assert.Equal(t, "api-tools", res.Records[0].Name, "prefix match should rank first")
}

func TestSearch_FuzzyFallback(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "alpha-api"),
		testRecord(2, 1, "beta-api"),
	)

	// "apx" has no substring match anywhere, but its edit-distance
	// similarity to the "api" name component exceeds the threshold.
	res, err := e.Search(context.Background(), Query{Text: "apx"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
}

func TestSearch_FuzzyDisabled(t *testing.T) {
	e := New(func(o *Options) { o.EnableFuzzy = false })
	e.UpdateIndex([]model.Record{
		testRecord(1, 1, "alpha-api"),
		testRecord(2, 1, "beta-api"),
	})

	res, err := e.Search(context.Background(), Query{Text: "apx"})
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
}

func TestSearch_StarFilterAndFacetTotal(t *testing.T) {
	stars := []int{2, 15, 8, 30, 11}
	recs := make([]model.Record, 0, len(stars))
	for i, s := range stars {
		recs = append(recs, testRecord(int64(i+1), 1, "proj", func(r *model.Record) {
			r.StarCount = s
		}))
	}
	e := newTestEngine(recs...)

	minStars := 10
	res, err := e.Search(context.Background(), Query{
		Filters: Filters{Stars: IntRange{Min: &minStars}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalCount)
	for _, rec := range res.Records {
		assert.GreaterOrEqual(t, rec.StarCount, 10)
	}
	assert.Equal(t, 3, res.Facets.ByInstance[1])
}

func TestSearch_Filters(t *testing.T) {
	yes := true
	e := newTestEngine(
		testRecord(1, 1, "one", func(r *model.Record) {
			r.Visibility = model.VisibilityPrivate
			r.OpenIssuesCount = 3
			r.PipelineStatus = model.PipelineSuccess
		}),
		testRecord(2, 2, "two", func(r *model.Record) {
			r.PipelineStatus = model.PipelineFailed
		}),
		testRecord(3, 2, "three", func(r *model.Record) {
			r.DefaultBranch = "develop"
		}),
	)

	tests := []struct {
		name    string
		filters Filters
		wantIDs []int64
	}{
		{"instance", Filters{Instances: []int64{2}}, []int64{2, 3}},
		{"visibility", Filters{Visibility: []model.Visibility{model.VisibilityPrivate}}, []int64{1}},
		{"open issues", Filters{HasOpenIssues: &yes}, []int64{1}},
		{"pipeline", Filters{PipelineStatus: []model.PipelineStatus{model.PipelineFailed}}, []int64{2}},
		{"branch", Filters{DefaultBranch: "develop"}, []int64{3}},
		{"combined", Filters{Instances: []int64{2}, DefaultBranch: "main"}, []int64{2}},
		{"placeholders are inert", Filters{Topics: []string{"go"}, License: "MIT"}, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Search(context.Background(), Query{Filters: tt.filters})
			require.NoError(t, err)
			got := make([]int64, 0, len(res.Records))
			for _, rec := range res.Records {
				got = append(got, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestSearch_FacetConsistency(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "a", func(r *model.Record) { r.PipelineStatus = model.PipelineSuccess }),
		testRecord(2, 1, "b", func(r *model.Record) {
			r.Visibility = model.VisibilityInternal
			r.PipelineStatus = model.PipelineFailed
		}),
		testRecord(3, 2, "c", func(r *model.Record) { r.PipelineStatus = model.PipelineSuccess }),
		testRecord(4, 2, "d", func(r *model.Record) {
			r.Visibility = model.VisibilityPrivate
			r.PipelineStatus = model.PipelineRunning
		}),
	)

	res, err := e.Search(context.Background(), Query{PerPage: 2})
	require.NoError(t, err)
	require.Equal(t, 4, res.TotalCount)
	require.Len(t, res.Records, 2)

	// Facets cover the whole filtered set, not the returned page.
	for name, counts := range map[string]int{
		"instance":   sumInt64Facet(res.Facets.ByInstance),
		"visibility": sumVisibilityFacet(res.Facets.ByVisibility),
		"pipeline":   sumPipelineFacet(res.Facets.ByPipelineStatus),
		"activity":   sumActivityFacet(res.Facets.ByActivity),
	} {
		assert.Equal(t, res.TotalCount, counts, "facet %s", name)
	}
}

func TestSearch_PipelineFacetOmitsRecordsWithoutPipeline(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "a", func(r *model.Record) { r.PipelineStatus = model.PipelineSuccess }),
		testRecord(2, 1, "b"),
	)

	res, err := e.Search(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)

	// A record with no pipeline is counted nowhere in the pipeline facet,
	// so this dimension may sum below the total.
	assert.Equal(t, map[model.PipelineStatus]int{model.PipelineSuccess: 1},
		res.Facets.ByPipelineStatus)
	assert.Equal(t, res.TotalCount, sumInt64Facet(res.Facets.ByInstance))
}

func sumInt64Facet(m map[int64]int) int {
	total := 0
	for _, c := range m {
		total += c
	}
	return total
}

func sumVisibilityFacet(m map[model.Visibility]int) int {
	total := 0
	for _, c := range m {
		total += c
	}
	return total
}

func sumPipelineFacet(m map[model.PipelineStatus]int) int {
	total := 0
	for _, c := range m {
		total += c
	}
	return total
}

func sumActivityFacet(m map[ActivityBucket]int) int {
	total := 0
	for _, c := range m {
		total += c
	}
	return total
}

func TestSearch_Sorting(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "bravo", func(r *model.Record) { r.StarCount = 5 }),
		testRecord(2, 1, "alpha", func(r *model.Record) { r.StarCount = 20 }),
		testRecord(3, 1, "charlie", func(r *model.Record) { r.StarCount = 10 }),
	)

	tests := []struct {
		name    string
		sort    SortOption
		wantIDs []int64
	}{
		{"name asc", SortOption{Field: SortByName}, []int64{2, 1, 3}},
		{"name desc", SortOption{Field: SortByName, Direction: SortDesc}, []int64{3, 1, 2}},
		{"stars desc", SortOption{Field: SortByStarCount, Direction: SortDesc}, []int64{2, 3, 1}},
		{"relevance is a no-op", SortOption{Field: SortByRelevance}, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Search(context.Background(), Query{Sort: tt.sort})
			require.NoError(t, err)
			got := make([]int64, 0, len(res.Records))
			for _, rec := range res.Records {
				got = append(got, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestSearch_SortOverridesRelevance(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "api-zulu", func(r *model.Record) { r.StarCount = 1 }),
		testRecord(2, 1, "suite-api", func(r *model.Record) { r.StarCount = 50 }),
	)

	res, err := e.Search(context.Background(), Query{
		Text: "api",
		Sort: SortOption{Field: SortByStarCount, Direction: SortDesc},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)
	assert.Equal(t, int64(2), res.Records[0].ID,
		"explicit sort field should override the relevance order")
}

func TestSearch_PaginationTotality(t *testing.T) {
	recs := make([]model.Record, 0, 10)
	for i := int64(1); i <= 10; i++ {
		recs = append(recs, testRecord(i, 1, "proj"))
	}
	e := newTestEngine(recs...)

	var gathered []int64
	for page := 1; page <= 4; page++ {
		res, err := e.Search(context.Background(), Query{Page: page, PerPage: 3})
		require.NoError(t, err)
		assert.Equal(t, 10, res.TotalCount)
		for _, rec := range res.Records {
			gathered = append(gathered, rec.ID)
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, gathered)

	res, err := e.Search(context.Background(), Query{Page: 99, PerPage: 3})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, 10, res.TotalCount)
}

func TestSearch_Timeout(t *testing.T) {
	e := New(func(o *Options) { o.Timeout = time.Nanosecond })
	e.UpdateIndex([]model.Record{testRecord(1, 1, "alpha")})

	// The deadline check at the head of the pipeline fires before any
	// stage runs.
	_, err := e.Search(context.Background(), Query{Text: "alpha"})

	var te *ErrTimeout
	require.ErrorAs(t, err, &te)
	assert.Equal(t, time.Nanosecond, te.Timeout)

	// No partial side effects.
	assert.Empty(t, e.History())
	assert.Zero(t, e.Analytics().TotalSearches)
}

func TestSearch_CallerDeadlineTighterThanTimeout(t *testing.T) {
	e := newTestEngine(testRecord(1, 1, "alpha"))

	// The caller's deadline is far tighter than the configured engine
	// timeout; the reported bound reflects it.
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	_, err := e.Search(ctx, Query{Text: "alpha"})

	var te *ErrTimeout
	require.ErrorAs(t, err, &te)
	assert.Less(t, te.Timeout, DefaultOptions().Timeout)
	assert.GreaterOrEqual(t, te.Timeout, time.Duration(0))
}

func TestSearch_CallerCancellation(t *testing.T) {
	e := newTestEngine(testRecord(1, 1, "alpha"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Search(ctx, Query{Text: "alpha"})
	require.Error(t, err)

	var te *ErrTimeout
	assert.False(t, errors.As(err, &te), "cancellation is not a timeout")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_HistoryBounded(t *testing.T) {
	e := New(func(o *Options) { o.MaxHistory = 3 })
	e.UpdateIndex([]model.Record{testRecord(1, 1, "alpha")})

	for _, q := range []string{"one", "two", "three", "four"} {
		_, err := e.Search(context.Background(), Query{Text: q})
		require.NoError(t, err)
	}

	history := e.History()
	require.Len(t, history, 3)
	assert.Equal(t, "four", history[0].Query.Text, "most recent first")
	assert.Equal(t, "two", history[2].Query.Text, "oldest entry dropped")

	e.ClearHistory()
	assert.Empty(t, e.History())
}

func TestSearch_Suggestions(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "payment-service", func(r *model.Record) {
			r.Description = "payments and payouts"
		}),
		testRecord(2, 1, "payroll"),
	)

	res, err := e.Search(context.Background(), Query{Text: "pay"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Suggestions)
	for _, s := range res.Suggestions {
		assert.Contains(t, s, "pay")
	}
}

func TestSuggestions_Union(t *testing.T) {
	e := newTestEngine(
		testRecord(1, 1, "dashboard"),
		testRecord(2, 1, "database"),
	)

	_, err := e.Search(context.Background(), Query{Text: "dash"})
	require.NoError(t, err)

	got := e.Suggestions("da", 10)
	// History first, then popular queries, then record names; duplicates
	// collapse case-insensitively.
	assert.Equal(t, []string{"dash", "dashboard", "database"}, got)

	assert.Empty(t, e.Suggestions("", 10))
	assert.Len(t, e.Suggestions("da", 2), 2)
}

func TestUpdateAndRemoveFromIndex(t *testing.T) {
	e := newTestEngine(testRecord(1, 1, "alpha"), testRecord(2, 1, "beta"))
	require.Equal(t, 2, e.IndexLen())

	// A re-push replaces, never mutates.
	e.UpdateIndex([]model.Record{testRecord(1, 1, "alpha-renamed")})
	assert.Equal(t, 2, e.IndexLen())

	res, err := e.Search(context.Background(), Query{Text: "renamed"})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)

	e.RemoveFromIndex([]int64{1, 99})
	assert.Equal(t, 1, e.IndexLen())
}

func TestFilterPresets(t *testing.T) {
	presets := FilterPresets(time.Now())
	require.NotEmpty(t, presets)

	names := make(map[string]Filters, len(presets))
	for _, p := range presets {
		names[p.Name] = p.Filters
	}
	require.Contains(t, names, "Active Projects")
	require.Contains(t, names, "Popular Projects")
	assert.False(t, names["Active Projects"].LastActivity.empty())
	require.NotNil(t, names["Popular Projects"].Stars.Min)
	assert.Equal(t, 10, *names["Popular Projects"].Stars.Min)
}
