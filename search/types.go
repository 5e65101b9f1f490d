package search

import (
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// SortField selects the record field a result set is ordered by.
type SortField string

// Sortable fields. SortByRelevance preserves the text-scoring order and is a
// no-op for queries without text.
const (
	SortByName         SortField = "name"
	SortByCreatedAt    SortField = "created_at"
	SortByUpdatedAt    SortField = "updated_at"
	SortByStarCount    SortField = "star_count"
	SortByForkCount    SortField = "fork_count"
	SortByLastActivity SortField = "last_activity_at"
	SortByRelevance    SortField = "relevance"
)

// SortDirection orders a sort ascending or descending.
type SortDirection string

// Sort directions. The empty value defaults to ascending.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOption pairs a sort field with a direction.
type SortOption struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// IntRange is an inclusive numeric range; nil bounds are open.
type IntRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

func (r IntRange) contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r IntRange) empty() bool { return r.Min == nil && r.Max == nil }

// TimeRange is an inclusive time range; zero bounds are open.
type TimeRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

func (r TimeRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func (r TimeRange) empty() bool { return r.From.IsZero() && r.To.IsZero() }

// Filters narrows a result set. Every populated field is ANDed with the
// others; empty fields match everything.
//
// Topics, Languages, License, Owners and Archived are accepted but inert:
// the Record model carries no backing data for them yet. They stay in the
// schema so callers serializing queries today keep working when the model
// grows.
type Filters struct {
	Instances            []int64                `json:"instances,omitempty"`
	Visibility           []model.Visibility     `json:"visibility,omitempty"`
	HasOpenIssues        *bool                  `json:"hasOpenIssues,omitempty"`
	HasOpenMergeRequests *bool                  `json:"hasOpenMergeRequests,omitempty"`
	Stars                IntRange               `json:"stars,omitempty"`
	Forks                IntRange               `json:"forks,omitempty"`
	LastActivity         TimeRange              `json:"lastActivity,omitempty"`
	CreatedAt            TimeRange              `json:"createdAt,omitempty"`
	PipelineStatus       []model.PipelineStatus `json:"pipelineStatus,omitempty"`
	DefaultBranch        string                 `json:"defaultBranch,omitempty"`

	// Placeholder fields, see type comment.
	Topics    []string `json:"topics,omitempty"`
	Languages []string `json:"languages,omitempty"`
	License   string   `json:"license,omitempty"`
	Owners    []string `json:"owners,omitempty"`
	Archived  *bool    `json:"archived,omitempty"`
}

// Query is one search request: free text, structural filters, sort and page.
type Query struct {
	Text    string     `json:"query"`
	Filters Filters    `json:"filters"`
	Sort    SortOption `json:"sort"`
	// Page is 1-based. Values below 1 are treated as 1.
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// ActivityBucket groups records by how recently they saw activity.
type ActivityBucket string

// Activity recency buckets, newest first.
const (
	BucketToday       ActivityBucket = "Today"
	BucketThisWeek    ActivityBucket = "This week"
	BucketThisMonth   ActivityBucket = "This month"
	BucketLastQuarter ActivityBucket = "Last 3 months"
	BucketOlder       ActivityBucket = "Older"
)

// Facets holds per-dimension match counts over the filtered, pre-pagination
// result set.
type Facets struct {
	ByInstance   map[int64]int            `json:"byInstance"`
	ByVisibility map[model.Visibility]int `json:"byVisibility"`

	// ByPipelineStatus omits records without a pipeline, so its counts may
	// sum to less than TotalCount. The other dimensions cover every match.
	ByPipelineStatus map[model.PipelineStatus]int `json:"byPipelineStatus"`

	ByActivity map[ActivityBucket]int `json:"byActivity"`
}

// Result is a completed search: one page of records plus the metadata
// computed over the full filtered set.
type Result struct {
	Records     []model.Record `json:"records"`
	TotalCount  int            `json:"totalCount"`
	Took        time.Duration  `json:"took"`
	Query       Query          `json:"query"`
	Facets      Facets         `json:"facets"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// SavedSearch is a named, reusable query. Executing it bumps LastUsedAt and
// UseCount; nothing else mutates it.
type SavedSearch struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Query      Query     `json:"query"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	UseCount   int       `json:"useCount"`
	Public     bool      `json:"public"`
}

// HistoryEntry is one completed search in the bounded query history.
type HistoryEntry struct {
	Query       Query     `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"resultCount"`
}

// QueryCount is one row of the popular-query table.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// DailyCount is one day of the 30-day search trend.
type DailyCount struct {
	// Date is the day in YYYY-MM-DD form.
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Analytics is a point-in-time view of search usage.
type Analytics struct {
	TotalSearches    int64         `json:"totalSearches"`
	PopularQueries   []QueryCount  `json:"popularQueries"`
	AverageLatency   time.Duration `json:"averageLatency"`
	NoResultSearches int64         `json:"noResultSearches"`
	DailyTrend       []DailyCount  `json:"dailyTrend"`
}

// FilterPreset is a named, non-persisted filter template offered as a
// starting point. Presets are illustrative defaults, not user data.
type FilterPreset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Filters     Filters `json:"filters"`
}
