package sheet

// process.go is the load pipeline: fetch -> parse -> resolve headers ->
// required-field gate -> per-row validation -> result assembly.
//
// All accumulation happens on a per-call run value, never on the Processor,
// so a load in flight is unaffected by config updates or later loads.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// linkFields are the canonical fields whose values are checked as URLs.
// A malformed link is a warning, not an error: the value is still stored
// and the row stays valid.
var linkFields = map[string]bool{
	"archive":             true,
	"petition":            true,
	"additionalDocuments": true,
	"order":               true,
}

// Processor runs loads against its current configuration. Safe for
// concurrent config reads and updates; overlapping loads are the caller's
// responsibility to serialize (see ingest.Service).
type Processor struct {
	mu      sync.RWMutex
	cfg     Config
	fetcher Fetcher
}

// NewProcessor creates a processor. A nil fetcher gets a default HTTP
// fetcher with a 30s timeout.
func NewProcessor(cfg Config, fetcher Fetcher) *Processor {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(30 * time.Second)
	}
	return &Processor{cfg: cfg, fetcher: fetcher}
}

// UpdateConfig merges a partial update into the live configuration.
// Field specs and validation toggles merge key-by-key.
func (p *Processor) UpdateConfig(u ConfigUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = p.cfg.merge(u)
}

// Config returns a snapshot of the current configuration.
func (p *Processor) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// FieldSpecs returns the current field table in declaration order.
func (p *Processor) FieldSpecs() []FieldSpec {
	p.mu.RLock()
	defer p.mu.RUnlock()
	specs := make([]FieldSpec, len(p.cfg.Fields))
	copy(specs, p.cfg.Fields)
	return specs
}

// run is the per-load accumulator. Every LoadAndProcess call starts from a
// fresh run; nothing carries over between loads.
type run struct {
	errors   []Diagnostic
	warnings []Diagnostic
	debug    bool
}

// add routes a diagnostic to the error or warning list by its kind's
// severity.
func (r *run) add(d Diagnostic) {
	if d.Kind.Severity() == SeverityWarning {
		r.warnings = append(r.warnings, d)
	} else {
		r.errors = append(r.errors, d)
	}
	if r.debug {
		slog.Debug("sheet diagnostic", "kind", d.Kind, "row", d.Row, "field", d.Field, "message", d.Message)
	}
}

// fatal produces the abort result: the single fatal diagnostic plus whatever
// warnings accumulated before the failure, and no rows.
func (r *run) fatal(d Diagnostic) *ProcessingResult {
	r.add(d)
	return &ProcessingResult{
		Success:  false,
		Rows:     []ProcessedRow{},
		Errors:   r.errors,
		Warnings: r.warnings,
	}
}

// LoadAndProcess runs one full load. It never returns an error: every
// failure path is converted into a diagnostic on a well-formed result.
func (p *Processor) LoadAndProcess(ctx context.Context) *ProcessingResult {
	cfg := p.Config()
	r := &run{debug: cfg.Debug}

	data, err := p.fetcher.Fetch(ctx, cfg.SheetURL)
	if err != nil {
		return r.fatal(Diagnostic{
			Kind:    KindFetchFailed,
			Message: err.Error(),
			Context: "fetch",
		})
	}

	headers, rawRows, err := parseRows(data)
	if err != nil {
		return r.fatal(Diagnostic{
			Kind:    KindParseFailed,
			Message: fmt.Sprintf("parse CSV: %v", err),
			Context: "parse",
		})
	}
	if len(headers) == 0 || len(rawRows) == 0 {
		return r.fatal(Diagnostic{
			Kind:    KindNoData,
			Message: "sheet contains no data rows",
			Context: "parse",
		})
	}

	mapping := resolveHeaders(headers, cfg.Fields, cfg.Validation, r)

	// Required-field gate: in strict mode an unmapped required field aborts
	// the load before any row is processed.
	if cfg.Validation.StrictMode && len(missingRequired(mapping)) > 0 {
		return &ProcessingResult{
			Success:  false,
			Rows:     []ProcessedRow{},
			Errors:   r.errors,
			Warnings: r.warnings,
			Mapping:  mapping,
		}
	}

	rows := make([]ProcessedRow, 0, len(rawRows))
	valid := 0
	for _, raw := range rawRows {
		row := processRow(raw, cfg.Fields, mapping, cfg.Validation, r)
		if row.Valid {
			valid++
		}
		rows = append(rows, row)
	}

	return &ProcessingResult{
		Success:   len(r.errors) == 0,
		Rows:      rows,
		Errors:    r.errors,
		Warnings:  r.warnings,
		Mapping:   mapping,
		TotalRows: len(rows),
		ValidRows: valid,
	}
}

// processRow validates one raw row against the field specs. Validation is
// short-circuited at the first failure per field; later fields still run.
// Row diagnostics are mirrored into the run's global lists.
func processRow(raw RawRow, specs []FieldSpec, mapping FieldMapping, opts ValidationOptions, r *run) ProcessedRow {
	row := ProcessedRow{
		Num:    raw.Num,
		Valid:  true,
		Values: make(map[string]string, len(specs)),
	}

	// record keeps the diagnostic on the row and mirrors it into the run's
	// global lists. Errors invalidate the row; warnings do not.
	record := func(d Diagnostic) {
		d.Row = raw.Num
		d.Context = "row validation"
		if d.Kind.Severity() == SeverityWarning {
			row.Warnings = append(row.Warnings, d)
		} else {
			row.Valid = false
			row.Errors = append(row.Errors, d)
		}
		r.add(d)
	}

	for _, spec := range specs {
		col, ok := mapping.Column(spec.Name)
		if !ok {
			// Only reachable for required fields when strict mode is off;
			// optional unmapped fields are silently absent from the row.
			if spec.Required {
				record(Diagnostic{
					Kind:    KindMissingRequiredValue,
					Message: fmt.Sprintf("no column mapped for required field %q", spec.Name),
					Field:   spec.Name,
				})
			}
			continue
		}

		value := raw.Values[col]

		if value == "" {
			if spec.Required {
				record(Diagnostic{
					Kind:    KindEmptyRequiredValue,
					Message: fmt.Sprintf("required field %q is empty", spec.Name),
					Field:   spec.Name,
				})
			}
			continue
		}

		if spec.Validator != nil && !spec.Validator.Validate(value) {
			record(Diagnostic{
				Kind:    KindInvalidFieldValue,
				Message: fmt.Sprintf("invalid value for %q: %q", spec.Name, value),
				Field:   spec.Name,
				Value:   value,
			})
			continue
		}

		if spec.Name == "year" && opts.ValidateYears {
			canonical, ok := parseYear(value)
			if !ok {
				record(Diagnostic{
					Kind:    KindInvalidYear,
					Message: fmt.Sprintf("invalid year %q (expected integer %d..current+%d)", value, MinYear, YearSlack),
					Field:   spec.Name,
					Value:   value,
				})
				continue
			}
			value = canonical
		}

		if linkFields[spec.Name] && opts.ValidateURLs && !validURL(value) {
			record(Diagnostic{
				Kind:    KindInvalidURL,
				Message: fmt.Sprintf("value for %q is not a well-formed URL: %q", spec.Name, value),
				Field:   spec.Name,
				Value:   value,
			})
			// Stored anyway: a broken link is the consumer's call to make.
		}

		row.Values[spec.Output()] = value
	}

	return row
}
