package search

import (
	"sort"
	"time"
)

// maxPopularQueries bounds the popular-query frequency table.
const maxPopularQueries = 20

// trendWindowDays is the length of the rolling daily search-count series.
const trendWindowDays = 30

// analytics is the engine's mutable usage state. Guarded by the engine lock.
type analytics struct {
	totalSearches    int64
	popular          map[string]int64
	averageLatency   time.Duration
	noResultSearches int64
	daily            map[string]int64
}

func newAnalytics() *analytics {
	return &analytics{
		popular: make(map[string]int64),
		daily:   make(map[string]int64),
	}
}

// record folds one completed search into the counters: total count, popular
// table (capped at 20), incremental-mean latency, zero-result count and the
// pruned 30-day daily trend.
func (a *analytics) record(queryText string, results int, took time.Duration, now time.Time) {
	a.totalSearches++
	a.averageLatency += (took - a.averageLatency) / time.Duration(a.totalSearches)
	if results == 0 {
		a.noResultSearches++
	}
	if queryText != "" {
		a.popular[queryText]++
		a.trimPopular()
	}

	day := now.Format(time.DateOnly)
	a.daily[day]++
	cutoff := now.AddDate(0, 0, -trendWindowDays).Format(time.DateOnly)
	for d := range a.daily {
		if d < cutoff {
			delete(a.daily, d)
		}
	}
}

// trimPopular drops the least-frequent entry once the table exceeds its cap,
// ties broken by query text for stability.
func (a *analytics) trimPopular() {
	for len(a.popular) > maxPopularQueries {
		var victim string
		var victimCount int64
		for q, c := range a.popular {
			if victim == "" || c < victimCount || (c == victimCount && q > victim) {
				victim, victimCount = q, c
			}
		}
		delete(a.popular, victim)
	}
}

// snapshot renders the counters as the caller-facing Analytics value, with
// popular queries and the daily trend in stable order.
func (a *analytics) snapshot() Analytics {
	popular := make([]QueryCount, 0, len(a.popular))
	for q, c := range a.popular {
		popular = append(popular, QueryCount{Query: q, Count: c})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Query < popular[j].Query
	})

	daily := make([]DailyCount, 0, len(a.daily))
	for d, c := range a.daily {
		daily = append(daily, DailyCount{Date: d, Count: c})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	return Analytics{
		TotalSearches:    a.totalSearches,
		PopularQueries:   popular,
		AverageLatency:   a.averageLatency,
		NoResultSearches: a.noResultSearches,
		DailyTrend:       daily,
	}
}
