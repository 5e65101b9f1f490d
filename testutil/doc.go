// Package testutil provides deterministic record generators for tests.
//
// This package is intended for use in tests and benchmarks only. Generators
// are pure functions of their arguments, so two calls with the same inputs
// produce identical records and test runs stay reproducible.
//
//	recs := testutil.Records(50, 1)              // fifty records on instance 1
//	rec := testutil.Record(7, 1, "alpha-api")    // one named record
package testutil
