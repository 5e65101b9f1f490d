// Package model defines the core types shared by the cache and search
// engines.
//
//   - Record: immutable snapshot of one remote project's metadata
//   - Visibility: project visibility level (public/private/internal)
//   - PipelineStatus: last pipeline state reported for a project
//
// Records are value types. Engines copy them on ingest and on return, so a
// Record handed to one engine never aliases a Record held by another.
package model
