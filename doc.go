// Package dashwatch maintains a local, time-bounded cache of project
// metadata fetched from a remote repository-hosting API and layers an ad-hoc
// search engine on top of the cached corpus.
//
// The two cores are the cache engine — a bounded, TTL-based, LRU-evicting
// key/value store of records, written through to a durable blob store — and
// the search engine, which scores, filters, facets, sorts and paginates a
// push-fed flat index of the same records. The two stores are deliberately
// decoupled: both are populated by the same upstream fetcher, and neither
// reads the other.
//
// Basic usage:
//
//	dw, err := dashwatch.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dw.Close()
//
//	dw.CacheSet(ctx, cache.Key{InstanceID: 1, RecordID: rec.ID, Type: "project"}, rec)
//	dw.UpdateSearchIndex(records)
//
//	res, err := dw.Search(ctx, search.Query{Text: "api", PerPage: 20})
//
// The fetch client, authentication and rendering are external collaborators;
// dashwatch only defines the shapes they produce and consume.
package dashwatch
