package search

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// applyFilters returns the records matching every populated filter, in input
// order. Set-valued dimensions (instance, visibility, pipeline status) are
// resolved through the index posting lists; the scalar predicates test the
// record directly.
func applyFilters(recs []model.Record, f Filters, ix *Index) []model.Record {
	instances := unionPostings(f.Instances, ix.InstancePostings)
	visibility := unionPostings(f.Visibility, ix.VisibilityPostings)
	pipeline := unionPostings(f.PipelineStatus, ix.PipelinePostings)

	out := recs[:0:0]
	for _, rec := range recs {
		id := uint64(rec.ID)
		if instances != nil && !instances.Contains(id) {
			continue
		}
		if visibility != nil && !visibility.Contains(id) {
			continue
		}
		if pipeline != nil && !pipeline.Contains(id) {
			continue
		}
		if !matchesScalar(rec, f) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// unionPostings folds the posting lists of the requested keys into one
// membership bitmap. A nil return means the dimension is unfiltered; an
// empty bitmap means the filter matches nothing in the index.
func unionPostings[K comparable](keys []K, lookup func(K) *roaring64.Bitmap) *roaring64.Bitmap {
	if len(keys) == 0 {
		return nil
	}
	union := roaring64.New()
	for _, key := range keys {
		if bm := lookup(key); bm != nil {
			union.Or(bm)
		}
	}
	return union
}

func matchesScalar(rec model.Record, f Filters) bool {
	if f.HasOpenIssues != nil && (rec.OpenIssuesCount > 0) != *f.HasOpenIssues {
		return false
	}
	if f.HasOpenMergeRequests != nil && (rec.OpenMergeRequestsCount > 0) != *f.HasOpenMergeRequests {
		return false
	}
	if !f.Stars.empty() && !f.Stars.contains(rec.StarCount) {
		return false
	}
	if !f.Forks.empty() && !f.Forks.contains(rec.ForkCount) {
		return false
	}
	if !f.LastActivity.empty() && !f.LastActivity.contains(rec.LastActivityAt) {
		return false
	}
	if !f.CreatedAt.empty() && !f.CreatedAt.contains(rec.CreatedAt) {
		return false
	}
	if f.DefaultBranch != "" && rec.DefaultBranch != f.DefaultBranch {
		return false
	}
	// Topics, Languages, License, Owners and Archived have no backing data
	// in the Record model and match everything.
	return true
}
