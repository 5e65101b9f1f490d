package search

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// Index is the flat record store the search pipeline runs over, plus roaring
// posting lists for the set-valued dimensions (instance, visibility,
// pipeline status) used by membership filters and facet counts.
//
// Index is push-fed and not safe for concurrent use on its own; the Engine
// serializes access.
type Index struct {
	records      map[int64]model.Record
	byInstance   map[int64]*roaring64.Bitmap
	byVisibility map[model.Visibility]*roaring64.Bitmap
	byPipeline   map[model.PipelineStatus]*roaring64.Bitmap
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		records:      make(map[int64]model.Record),
		byInstance:   make(map[int64]*roaring64.Bitmap),
		byVisibility: make(map[model.Visibility]*roaring64.Bitmap),
		byPipeline:   make(map[model.PipelineStatus]*roaring64.Bitmap),
	}
}

// Upsert adds or replaces one record.
func (ix *Index) Upsert(rec model.Record) {
	if old, ok := ix.records[rec.ID]; ok {
		ix.unpost(old)
	}
	ix.records[rec.ID] = rec
	ix.post(rec)
}

// Remove drops a record by id. Unknown ids are ignored.
func (ix *Index) Remove(id int64) {
	rec, ok := ix.records[id]
	if !ok {
		return
	}
	ix.unpost(rec)
	delete(ix.records, id)
}

// Len returns the number of indexed records.
func (ix *Index) Len() int { return len(ix.records) }

// Get returns the record with the given id.
func (ix *Index) Get(id int64) (model.Record, bool) {
	rec, ok := ix.records[id]
	return rec, ok
}

// All returns every record in ascending-id order. This is the base order of
// a search without text scoring.
func (ix *Index) All() []model.Record {
	ids := make([]int64, 0, len(ix.records))
	for id := range ix.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	recs := make([]model.Record, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, ix.records[id])
	}
	return recs
}

// InstancePostings returns the bitmap of record ids for one instance, or nil.
func (ix *Index) InstancePostings(instanceID int64) *roaring64.Bitmap {
	return ix.byInstance[instanceID]
}

// VisibilityPostings returns the bitmap of record ids for one visibility
// level, or nil.
func (ix *Index) VisibilityPostings(v model.Visibility) *roaring64.Bitmap {
	return ix.byVisibility[v]
}

// PipelinePostings returns the bitmap of record ids for one pipeline status,
// or nil.
func (ix *Index) PipelinePostings(s model.PipelineStatus) *roaring64.Bitmap {
	return ix.byPipeline[s]
}

func (ix *Index) post(rec model.Record) {
	id := uint64(rec.ID)
	postingAdd(ix.byInstance, rec.InstanceID, id)
	postingAdd(ix.byVisibility, rec.Visibility, id)
	if rec.PipelineStatus != model.PipelineNone {
		postingAdd(ix.byPipeline, rec.PipelineStatus, id)
	}
}

func (ix *Index) unpost(rec model.Record) {
	id := uint64(rec.ID)
	postingRemove(ix.byInstance, rec.InstanceID, id)
	postingRemove(ix.byVisibility, rec.Visibility, id)
	if rec.PipelineStatus != model.PipelineNone {
		postingRemove(ix.byPipeline, rec.PipelineStatus, id)
	}
}

func postingAdd[K comparable](m map[K]*roaring64.Bitmap, key K, id uint64) {
	bm, ok := m[key]
	if !ok {
		bm = roaring64.New()
		m[key] = bm
	}
	bm.Add(id)
}

func postingRemove[K comparable](m map[K]*roaring64.Bitmap, key K, id uint64) {
	bm, ok := m[key]
	if !ok {
		return
	}
	bm.Remove(id)
	if bm.IsEmpty() {
		delete(m, key)
	}
}
