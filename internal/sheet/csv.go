package sheet

// csv.go turns raw spreadsheet text into RawRows. encoding/csv is treated as
// a black box; this layer handles the artifacts published sheets actually
// ship: invalid UTF-8, stray quoting, blank padding rows, short records.

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
)

// parseRows parses CSV text into a header row plus RawRows. The header is
// the first non-empty record. Data rows are numbered 1..n by sheet position
// after the header; blank rows are skipped but keep their number so
// diagnostics point at the real sheet row.
func parseRows(data []byte) (headers []string, rows []RawRow, err error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	start := -1
	for i, rec := range records {
		if !isEmptyRow(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil, nil
	}

	headers = make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = cleanCell(h)
	}

	for i, rec := range records[start+1:] {
		if isEmptyRow(rec) {
			continue
		}
		values := make(map[string]string, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			if j < len(rec) {
				values[h] = cleanCell(rec[j])
			} else {
				values[h] = ""
			}
		}
		rows = append(rows, RawRow{Num: i + 1, Values: values})
	}

	return headers, rows, nil
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune.
// Published sheets occasionally arrive with Windows-1252 leftovers.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// cleanCell strips common spreadsheet export artifacts from a cell:
// surrounding whitespace, Excel formula prefixes (="value"), stray quotes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
