// Package search implements the ad-hoc query engine over the push-fed
// record index: text relevance with fuzzy fallback, structural filtering,
// faceting, sorting, pagination, suggestions, saved searches, query history
// and usage analytics.
//
// The pipeline order is fixed — score, filter, facet, sort, paginate,
// suggest — and races against a configurable timeout. A timed-out search
// returns ErrTimeout and commits no side effects; a successful one appends
// to the bounded history and updates the analytics counters.
//
// The index is a flat id→record map fed exclusively by UpdateIndex and
// RemoveFromIndex. It never pulls from the cache engine; the two stores hold
// the same logical data but can transiently disagree, by design.
package search
