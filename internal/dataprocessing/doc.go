// Package dataprocessing implements the movie-metadata cleaning pipeline:
// parsing the raw delimited TMDb export, coercing every field to its
// semantic type, deriving adjusted profit, deduplicating by movie ID,
// filtering out rows with placeholder financials, and aggregating the
// resulting clean table.
//
// The stages run strictly in order (parse, coerce, assemble, filter)
// because each stage assumes the invariants established by the one before
// it. Parse and conversion failures are row-local: the offending row is
// dropped and counted, never aborting the run. Validity exclusion is a
// designed outcome, not an error; the per-stage counts are collected in
// PipelineStats so the (expectedly large) attrition is auditable.
package dataprocessing
