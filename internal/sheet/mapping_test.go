package sheet

import (
	"testing"
)

func resolveForTest(headers []string, specs []FieldSpec, opts ValidationOptions) (FieldMapping, *run) {
	r := &run{}
	m := resolveHeaders(headers, specs, opts, r)
	return m, r
}

// ============================================================================
// Alias precedence
// ============================================================================

func TestResolveHeaders_ExactBeatsEarlierPartial(t *testing.T) {
	// Alias "Date" partially matches "Date Created" first, but the later
	// alias "Year" matches "Year" exactly and must win.
	specs := []FieldSpec{
		{Name: "year", Aliases: []string{"Date", "Year"}, Required: true},
	}
	headers := []string{"Date Created", "Year"}

	m, r := resolveForTest(headers, specs, ValidationOptions{})

	col, ok := m.Column("year")
	if !ok {
		t.Fatalf("year not mapped; errors: %v", r.errors)
	}
	if col != "Year" {
		t.Errorf("year mapped to %q, want %q", col, "Year")
	}
}

func TestResolveHeaders_PartialFallback(t *testing.T) {
	specs := []FieldSpec{
		{Name: "archive", Aliases: []string{"Archive"}},
	}
	headers := []string{"Archive Link (PDF)"}

	m, _ := resolveForTest(headers, specs, ValidationOptions{})

	col, ok := m.Column("archive")
	if !ok || col != "Archive Link (PDF)" {
		t.Errorf("archive mapped to %q (ok=%v), want partial match on %q", col, ok, headers[0])
	}
}

func TestResolveHeaders_FirstPartialWins(t *testing.T) {
	// Two headers contain "order"; with no exact match anywhere the first
	// partial encountered is kept.
	specs := []FieldSpec{
		{Name: "order", Aliases: []string{"order"}},
	}
	headers := []string{"Court Order Copy", "Order Sheet"}

	m, _ := resolveForTest(headers, specs, ValidationOptions{})

	col, _ := m.Column("order")
	if col != "Court Order Copy" {
		t.Errorf("order mapped to %q, want first partial %q", col, "Court Order Copy")
	}
}

func TestResolveHeaders_CaseAndWhitespaceInsensitive(t *testing.T) {
	tests := []struct {
		name   string
		header string
		alias  string
	}{
		{"different case", "YEAR", "Year"},
		{"surrounding whitespace", "  Year  ", "Year"},
		{"alias with whitespace", "Year", "  year "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := []FieldSpec{{Name: "year", Aliases: []string{tt.alias}, Required: true}}
			m, _ := resolveForTest([]string{tt.header}, specs, ValidationOptions{})
			if _, ok := m.Column("year"); !ok {
				t.Errorf("header %q did not match alias %q", tt.header, tt.alias)
			}
		})
	}
}

// ============================================================================
// Diagnostics
// ============================================================================

func TestResolveHeaders_MissingRequiredCount(t *testing.T) {
	specs := []FieldSpec{
		{Name: "year", Aliases: []string{"Year"}, Required: true},
		{Name: "title", Aliases: []string{"Title"}, Required: true},
		{Name: "description", Aliases: []string{"Description"}},
	}
	headers := []string{"Something", "Else"}

	_, r := resolveForTest(headers, specs, ValidationOptions{})

	count := 0
	for _, d := range r.errors {
		if d.Kind == KindMissingRequiredField {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d MISSING_REQUIRED_FIELD errors, want 2; errors: %v", count, r.errors)
	}
}

func TestResolveHeaders_MissingOptionalWarning(t *testing.T) {
	specs := []FieldSpec{{Name: "category", Aliases: []string{"Category"}}}

	_, r := resolveForTest([]string{"Year"}, specs, ValidationOptions{LogMissingOptional: true})
	found := false
	for _, d := range r.warnings {
		if d.Kind == KindMissingOptionalField && d.Field == "category" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MISSING_OPTIONAL_FIELD warning, got %v", r.warnings)
	}

	_, r = resolveForTest([]string{"Year"}, specs, ValidationOptions{LogMissingOptional: false})
	for _, d := range r.warnings {
		if d.Kind == KindMissingOptionalField {
			t.Errorf("unexpected MISSING_OPTIONAL_FIELD warning with logging disabled")
		}
	}
}

func TestResolveHeaders_UnmappedColumns(t *testing.T) {
	specs := []FieldSpec{
		{Name: "year", Aliases: []string{"Year"}, Required: true},
	}

	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{"distinct headers", []string{"Year", "Notes", "Internal ID"}, []string{"Notes", "Internal ID"}},
		{"duplicate header listed once", []string{"Year", "Notes", "Notes"}, []string{"Notes"}},
		{"duplicates differing in case", []string{"Year", "Notes", "NOTES"}, []string{"Notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := resolveForTest(tt.headers, specs, ValidationOptions{})

			var unmapped []Diagnostic
			for _, d := range r.warnings {
				if d.Kind == KindUnmappedColumns {
					unmapped = append(unmapped, d)
				}
			}
			if len(unmapped) != 1 {
				t.Fatalf("got %d UNMAPPED_COLUMNS warnings, want exactly 1", len(unmapped))
			}
			got := unmapped[0].Aliases
			if len(got) != len(tt.want) {
				t.Fatalf("unmapped columns = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("unmapped[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveHeaders_HeadersNotReserved(t *testing.T) {
	// Two fields may resolve to the same column; claiming only affects the
	// unmapped-columns report.
	specs := []FieldSpec{
		{Name: "year", Aliases: []string{"Year"}},
		{Name: "title", Aliases: []string{"Year"}},
	}
	headers := []string{"Year"}

	m, r := resolveForTest(headers, specs, ValidationOptions{})

	for _, field := range []string{"year", "title"} {
		if col, ok := m.Column(field); !ok || col != "Year" {
			t.Errorf("%s mapped to %q (ok=%v), want shared column \"Year\"", field, col, ok)
		}
	}
	for _, d := range r.warnings {
		if d.Kind == KindUnmappedColumns {
			t.Errorf("unexpected UNMAPPED_COLUMNS warning: %v", d)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	specs := []FieldSpec{
		{Name: "year", Aliases: []string{"Year"}, Required: true},
		{Name: "title", Aliases: []string{"Title"}, Required: true},
	}
	m, _ := resolveForTest([]string{"Title"}, specs, ValidationOptions{})

	missing := missingRequired(m)
	if len(missing) != 1 || missing[0] != "year" {
		t.Errorf("missingRequired = %v, want [year]", missing)
	}
}
