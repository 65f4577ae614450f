// Package etl implements the goodbooks batch pipeline: extract the five raw
// CSV datasets, clean them per entity, and load the result into the two
// sinks (cleaned CSV mirror and sqlite via full-table replace).
//
// Failure semantics split in two. Structural problems — a missing source
// file, a required column absent from a schema, an unreachable database —
// abort the run. Data-quality problems — duplicate keys, out-of-range
// ratings, null required fields — are dropped row by row with a warning and
// never fail a run.
//
// The full-replace load means anything written into the five pipeline-owned
// tables between runs (for example ratings posted through the API) is wiped
// by the next run. That trade-off buys idempotence: the stored state always
// mirrors the latest cleaned extraction exactly.
package etl
