package search

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// computeFacets tabulates per-dimension counts over the filtered,
// pre-pagination set, so facets reflect what other values exist among the
// current matches rather than just the returned page. The four dimensions
// are independent and tabulated concurrently.
func computeFacets(recs []model.Record, ix *Index, now time.Time) Facets {
	matched := roaring64.New()
	for _, rec := range recs {
		matched.Add(uint64(rec.ID))
	}

	facets := Facets{}
	var g errgroup.Group

	g.Go(func() error {
		facets.ByInstance = make(map[int64]int)
		for _, rec := range recs {
			instance := rec.InstanceID
			if _, done := facets.ByInstance[instance]; done {
				continue
			}
			if bm := ix.InstancePostings(instance); bm != nil {
				facets.ByInstance[instance] = int(roaring64.And(bm, matched).GetCardinality())
			}
		}
		return nil
	})
	g.Go(func() error {
		facets.ByVisibility = make(map[model.Visibility]int)
		for _, rec := range recs {
			if _, done := facets.ByVisibility[rec.Visibility]; done {
				continue
			}
			if bm := ix.VisibilityPostings(rec.Visibility); bm != nil {
				facets.ByVisibility[rec.Visibility] = int(roaring64.And(bm, matched).GetCardinality())
			}
		}
		return nil
	})
	g.Go(func() error {
		facets.ByPipelineStatus = make(map[model.PipelineStatus]int)
		for _, rec := range recs {
			if rec.PipelineStatus == model.PipelineNone {
				continue
			}
			if _, done := facets.ByPipelineStatus[rec.PipelineStatus]; done {
				continue
			}
			if bm := ix.PipelinePostings(rec.PipelineStatus); bm != nil {
				facets.ByPipelineStatus[rec.PipelineStatus] = int(roaring64.And(bm, matched).GetCardinality())
			}
		}
		return nil
	})
	g.Go(func() error {
		facets.ByActivity = make(map[ActivityBucket]int)
		for _, rec := range recs {
			facets.ByActivity[activityBucket(rec.LastActivityAt, now)]++
		}
		return nil
	})

	// The tabulators never fail; Wait only synchronizes them.
	_ = g.Wait()
	return facets
}

// activityBucket assigns a last-activity timestamp to its recency bucket.
func activityBucket(t, now time.Time) ActivityBucket {
	age := now.Sub(t)
	switch {
	case age < 24*time.Hour:
		return BucketToday
	case age < 7*24*time.Hour:
		return BucketThisWeek
	case age < 30*24*time.Hour:
		return BucketThisMonth
	case age < 90*24*time.Hour:
		return BucketLastQuarter
	default:
		return BucketOlder
	}
}
