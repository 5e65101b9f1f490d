package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_Counters(t *testing.T) {
	e := newTestEngine(testRecord(1, 1, "alpha"))

	for i := 0; i < 3; i++ {
		_, err := e.Search(context.Background(), Query{Text: "alpha"})
		require.NoError(t, err)
	}
	_, err := e.Search(context.Background(), Query{Text: "nothing-matches-this"})
	require.NoError(t, err)

	a := e.Analytics()
	assert.Equal(t, int64(4), a.TotalSearches)
	assert.Equal(t, int64(1), a.NoResultSearches)

	require.NotEmpty(t, a.PopularQueries)
	assert.Equal(t, "alpha", a.PopularQueries[0].Query)
	assert.Equal(t, int64(3), a.PopularQueries[0].Count)

	require.Len(t, a.DailyTrend, 1)
	assert.Equal(t, time.Now().Format(time.DateOnly), a.DailyTrend[0].Date)
	assert.Equal(t, int64(4), a.DailyTrend[0].Count)
}

func TestAnalytics_PopularTableBounded(t *testing.T) {
	a := newAnalytics()
	now := time.Now()

	// "hot" gets more weight than the churn of one-off queries.
	for i := 0; i < 5; i++ {
		a.record("hot", 1, time.Millisecond, now)
	}
	for i := 0; i < 30; i++ {
		a.record(fmt.Sprintf("one-off-%02d", i), 1, time.Millisecond, now)
	}

	snap := a.snapshot()
	assert.Len(t, snap.PopularQueries, maxPopularQueries)
	assert.Equal(t, "hot", snap.PopularQueries[0].Query)
}

func TestAnalytics_TrendPruned(t *testing.T) {
	a := newAnalytics()
	now := time.Now()

	a.record("old", 1, time.Millisecond, now.AddDate(0, 0, -45))
	a.record("recent", 1, time.Millisecond, now.AddDate(0, 0, -5))
	a.record("today", 1, time.Millisecond, now)

	snap := a.snapshot()
	require.Len(t, snap.DailyTrend, 2, "days older than the window are pruned")
	assert.Equal(t, now.AddDate(0, 0, -5).Format(time.DateOnly), snap.DailyTrend[0].Date)
	assert.Equal(t, now.Format(time.DateOnly), snap.DailyTrend[1].Date)
}

func TestAnalytics_AverageLatencyIncrementalMean(t *testing.T) {
	a := newAnalytics()
	now := time.Now()

	a.record("q", 1, 10*time.Millisecond, now)
	a.record("q", 1, 30*time.Millisecond, now)

	assert.Equal(t, 20*time.Millisecond, a.snapshot().AverageLatency)
}
