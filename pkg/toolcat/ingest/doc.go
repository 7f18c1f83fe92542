// Package ingest turns raw source rows into a validated, deduplicated
// and categorized catalog.
//
// A run walks the whole row set once per stage:
//
//  1. column presence check with backfill of popularity, date and category
//  2. per-row required-field check
//  3. field normalization
//  4. dataset-level date checks
//  5. category completion through the hybrid classifier
//  6. deduplication on (name, category), first occurrence wins
//  7. trend scoring and grouping by category
//
// Data problems never fail a run; they are returned as defects.
package ingest
