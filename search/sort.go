package search

import (
	"sort"
	"strings"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// applySort orders recs in place by the requested field and direction.
// SortByRelevance (and the empty field) is a no-op: the caller's ordering —
// descending text score, or ascending id when no text was scored — stands.
// The sort is stable, so equal keys keep their relevance order.
func applySort(recs []model.Record, opt SortOption) {
	less := lessFunc(opt.Field)
	if less == nil {
		return
	}
	if opt.Direction == SortDesc {
		inner := less
		less = func(a, b model.Record) bool { return inner(b, a) }
	}
	sort.SliceStable(recs, func(i, j int) bool { return less(recs[i], recs[j]) })
}

func lessFunc(field SortField) func(a, b model.Record) bool {
	switch field {
	case SortByName:
		return func(a, b model.Record) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByCreatedAt:
		return func(a, b model.Record) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b model.Record) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortByStarCount:
		return func(a, b model.Record) bool { return a.StarCount < b.StarCount }
	case SortByForkCount:
		return func(a, b model.Record) bool { return a.ForkCount < b.ForkCount }
	case SortByLastActivity:
		return func(a, b model.Record) bool { return a.LastActivityAt.Before(b.LastActivityAt) }
	default:
		return nil
	}
}

// paginate slices the 1-based page out of recs. Out-of-range pages yield an
// empty slice, never an error.
func paginate(recs []model.Record, page, perPage int) []model.Record {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(recs) {
		return []model.Record{}
	}
	end := start + perPage
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}
