package sheet

// diagnostics.go defines the closed set of diagnostic kinds the pipeline can
// emit. Diagnostics are append-only: once recorded on a row or on the run
// they are never removed. A diagnostic produced while validating a row is
// kept on that row and mirrored into the run's global list.

import "fmt"

// Kind identifies a diagnostic category. The set is closed; new kinds require
// a severity entry below.
type Kind string

const (
	// Fatal or row-level errors.
	KindMissingRequiredField Kind = "MISSING_REQUIRED_FIELD"
	KindEmptyRequiredValue   Kind = "EMPTY_REQUIRED_VALUE"
	KindMissingRequiredValue Kind = "MISSING_REQUIRED_VALUE"
	KindInvalidFieldValue    Kind = "INVALID_FIELD_VALUE"
	KindInvalidYear          Kind = "INVALID_YEAR"
	KindFetchFailed          Kind = "FETCH_FAILED"
	KindParseFailed          Kind = "PARSE_FAILED"
	KindNoData               Kind = "NO_DATA"

	// Warnings: informational, never invalidate anything.
	KindMissingOptionalField Kind = "MISSING_OPTIONAL_FIELD"
	KindUnmappedColumns      Kind = "UNMAPPED_COLUMNS"
	KindInvalidURL           Kind = "INVALID_URL"
)

// Severity splits diagnostics into errors (invalidate a row or the load) and
// warnings (purely informational).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

var kindSeverity = map[Kind]Severity{
	KindMissingRequiredField: SeverityError,
	KindEmptyRequiredValue:   SeverityError,
	KindMissingRequiredValue: SeverityError,
	KindInvalidFieldValue:    SeverityError,
	KindInvalidYear:          SeverityError,
	KindFetchFailed:          SeverityError,
	KindParseFailed:          SeverityError,
	KindNoData:               SeverityError,
	KindMissingOptionalField: SeverityWarning,
	KindUnmappedColumns:      SeverityWarning,
	KindInvalidURL:           SeverityWarning,
}

// Severity returns the fixed severity for the kind.
func (k Kind) Severity() Severity {
	return kindSeverity[k]
}

// Fatal kinds abort the whole load: the result carries the single fatal
// diagnostic and no rows.
func (k Kind) Fatal() bool {
	switch k {
	case KindFetchFailed, KindParseFailed, KindNoData:
		return true
	}
	return false
}

// Diagnostic is one error or warning produced by the pipeline. Field, Row,
// Value and Aliases are optional payload; zero values mean "not applicable".
type Diagnostic struct {
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Context string   `json:"context,omitempty"`
	Field   string   `json:"field,omitempty"`
	Row     int      `json:"row,omitempty"`
	Value   string   `json:"value,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Row > 0 {
		return fmt.Sprintf("[%s] row %d: %s", d.Kind, d.Row, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}
