package sheet

// FieldSpec defines a single canonical field the processor looks for in the
// spreadsheet. The alias list is scanned in declared order during header
// resolution; the first alias list entry is conventionally the "real" header.
type FieldSpec struct {
	Name        string    // Canonical field name, e.g. "year"
	Aliases     []string  // Acceptable source header strings, in priority order
	Required    bool      // Field must resolve to a column (strict mode aborts otherwise)
	Description string    // Human description for reports and field listings
	Validator   Validator // Optional caller-supplied value check
	OutputName  string    // Key the value is stored under; canonical name if empty
}

// Output returns the key a validated value is stored under.
func (f FieldSpec) Output() string {
	if f.OutputName != "" {
		return f.OutputName
	}
	return f.Name
}

// MatchStatus reports whether a canonical field resolved to a source column.
type MatchStatus string

const (
	MatchFound    MatchStatus = "found"
	MatchNotFound MatchStatus = "not_found"
)

// FieldMatch records the header-resolution outcome for one canonical field.
type FieldMatch struct {
	Field    string      `json:"field"`
	Column   string      `json:"column,omitempty"`
	Status   MatchStatus `json:"status"`
	Required bool        `json:"required"`
	Aliases  []string    `json:"aliases,omitempty"` // retained when not found, for diagnostics
}

// FieldMapping is the result of resolving all FieldSpecs against the source
// headers. Built once per load, read-only afterward. Matches preserve the
// FieldSpec declaration order.
type FieldMapping struct {
	Matches []FieldMatch `json:"matches"`
	index   map[string]int
}

// Column returns the resolved source column for a canonical field.
func (m *FieldMapping) Column(field string) (string, bool) {
	i, ok := m.index[field]
	if !ok || m.Matches[i].Status != MatchFound {
		return "", false
	}
	return m.Matches[i].Column, true
}

// RawRow is one spreadsheet row keyed by source column name.
// Num is the 1-indexed data row number (the header row is row 0).
type RawRow struct {
	Num    int
	Values map[string]string
}

// ProcessedRow is the validated, transformed form of a RawRow. Rows are never
// dropped: an invalid row stays in the output with Valid set to false.
type ProcessedRow struct {
	Num      int               `json:"row"`
	Valid    bool              `json:"valid"`
	Errors   []Diagnostic      `json:"errors,omitempty"`
	Warnings []Diagnostic      `json:"warnings,omitempty"`
	Values   map[string]string `json:"values"`
}

// ProcessingResult is the full outcome of one load. Success is true iff the
// global error list is empty; per-row warnings never affect it.
type ProcessingResult struct {
	Success   bool           `json:"success"`
	Rows      []ProcessedRow `json:"rows"`
	Errors    []Diagnostic   `json:"errors"`
	Warnings  []Diagnostic   `json:"warnings"`
	Mapping   FieldMapping   `json:"mapping"`
	TotalRows int            `json:"totalRows"`
	ValidRows int            `json:"validRows"`
}
