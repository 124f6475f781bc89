// Package sheet implements the spreadsheet record processor: it fetches a
// published spreadsheet as CSV text, resolves its column headers against a
// configured set of canonical fields via alias matching, validates and
// transforms each row, and produces a structured result with aggregated
// diagnostics plus a human-readable summary report.
//
// The pipeline is synchronous. The only suspension point is the HTTP fetch,
// which honors the caller's context. Every load builds its state from scratch
// in a per-call accumulator, so a Processor can be shared as long as callers
// serialize overlapping loads themselves (the ingest service does).
//
// Nothing escapes LoadAndProcess as an error: fetch failures, parse failures,
// empty sheets and strict-mode aborts all come back as diagnostics on a
// well-formed ProcessingResult with Success set to false. Callers decide
// whether to block on Success, filter rows on validity, or surface the
// generated report verbatim.
package sheet
