package sheet

import (
	"bytes"
	"testing"
)

// ============================================================================
// parseRows
// ============================================================================

func TestParseRows_Basic(t *testing.T) {
	data := []byte("Year,Title\n1999,First\n2001,Second\n")

	headers, rows, err := parseRows(data)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if len(headers) != 2 || headers[0] != "Year" || headers[1] != "Title" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Num != 1 || rows[0].Values["Year"] != "1999" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	if rows[1].Num != 2 || rows[1].Values["Title"] != "Second" {
		t.Errorf("row 2 = %+v", rows[1])
	}
}

func TestParseRows_LeadingBlankRowsBeforeHeader(t *testing.T) {
	data := []byte("\n,,\nYear,Title\n1999,Event\n")

	headers, rows, err := parseRows(data)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if len(headers) != 2 || headers[0] != "Year" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 1 || rows[0].Values["Year"] != "1999" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseRows_ShortRowReadsEmpty(t *testing.T) {
	data := []byte("Year,Title,Archive\n1999,Event\n")

	_, rows, err := parseRows(data)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if got := rows[0].Values["Archive"]; got != "" {
		t.Errorf("missing trailing cell = %q, want empty", got)
	}
}

func TestParseRows_AllBlank(t *testing.T) {
	headers, rows, err := parseRows([]byte("\n\n  ,  \n"))
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if headers != nil || rows != nil {
		t.Errorf("headers = %v, rows = %v, want none", headers, rows)
	}
}

func TestParseRows_EmptyHeaderCellsSkipped(t *testing.T) {
	data := []byte("Year,,Title\n1999,junk,Event\n")

	_, rows, err := parseRows(data)
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if _, present := rows[0].Values[""]; present {
		t.Error("unnamed column must not produce a value")
	}
	if rows[0].Values["Title"] != "Event" {
		t.Errorf("Title = %q", rows[0].Values["Title"])
	}
}

// ============================================================================
// cleanCell
// ============================================================================

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "value", "value"},
		{"whitespace trimmed", "  value  ", "value"},
		{"excel formula prefix", `="12345"`, "12345"},
		{"bare equals prefix", "=value", "value"},
		{"surrounding quotes", `"quoted"`, "quoted"},
		{"single quotes", "'quoted'", "quoted"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanCell(tt.input); got != tt.want {
				t.Errorf("cleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================================
// sanitizeUTF8
// ============================================================================

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"valid passes through", []byte("hello world"), []byte("hello world")},
		{"empty", []byte{}, []byte{}},
		{"invalid byte replaced", []byte{0x80}, []byte("�")},
		{"mixed", []byte("a\x80b"), []byte("a�b")},
		{"latin-1 high byte", []byte("caf\xe9"), []byte("caf�")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeUTF8(tt.input); !bytes.Equal(got, tt.want) {
				t.Errorf("sanitizeUTF8(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsEmptyRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"empty slice", []string{}, true},
		{"empty cells", []string{"", ""}, true},
		{"whitespace cells", []string{"  ", "\t"}, true},
		{"one value", []string{"", "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmptyRow(tt.row); got != tt.want {
				t.Errorf("isEmptyRow(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}
