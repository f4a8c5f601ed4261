// Package operations runs the report pipeline over batches of input tables.
//
// A run discovers the inputs, then for each table, sequentially:
//
//	parse → normalize → summarize → render → record in the manifest
//
// Failure isolation:
//
//   - a table without a header row or without student blocks is skipped
//     and logged; no document is written for it
//   - a read or render failure is logged with the underlying message and
//     recorded as failed; the run continues with the next input
//   - a missing input directory aborts the run before anything is written
//   - context cancellation is honoured between tables
//
// Every run writes run_manifest.json into the output directory with one
// entry per table. Each table is traced in its own span and counted in the
// run metrics when telemetry is configured.
package operations
