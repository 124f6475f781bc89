package sheet

// mapping.go resolves source column headers to canonical fields.
//
// Matching rules, per field, scanning aliases in declared order:
//   - A case-insensitive, whitespace-trimmed exact match binds immediately
//     and stops the alias scan for that field.
//   - A case-insensitive substring match (header contains the alias) is
//     recorded the first time one is seen but does not stop the scan, so an
//     exact match on a later alias still wins over an earlier partial match.
//
// Matched headers are not reserved: two fields may resolve to the same
// column. The claimed-header bookkeeping only feeds the UNMAPPED_COLUMNS
// warning at the end.

import (
	"fmt"
	"strings"
)

// resolveHeaders builds the FieldMapping for one load and records the
// mapping diagnostics on the run.
func resolveHeaders(headers []string, specs []FieldSpec, opts ValidationOptions, r *run) FieldMapping {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := FieldMapping{
		Matches: make([]FieldMatch, 0, len(specs)),
		index:   make(map[string]int, len(specs)),
	}
	claimed := make([]bool, len(headers))

	for _, spec := range specs {
		exact, partial := -1, -1

		for _, alias := range spec.Aliases {
			a := strings.ToLower(strings.TrimSpace(alias))
			if a == "" {
				continue
			}
			for i, h := range norm {
				if h == a {
					exact = i
					break
				}
			}
			if exact >= 0 {
				break
			}
			if partial < 0 {
				for i, h := range norm {
					if strings.Contains(h, a) {
						partial = i
						break
					}
				}
			}
		}

		match := FieldMatch{Field: spec.Name, Required: spec.Required}
		col := exact
		if col < 0 {
			col = partial
		}
		if col >= 0 {
			match.Status = MatchFound
			match.Column = headers[col]
			claimed[col] = true
		} else {
			match.Status = MatchNotFound
			match.Aliases = spec.Aliases
			if spec.Required {
				r.add(Diagnostic{
					Kind:    KindMissingRequiredField,
					Message: fmt.Sprintf("required field %q not found (aliases tried: %s)", spec.Name, strings.Join(spec.Aliases, ", ")),
					Context: "header resolution",
					Field:   spec.Name,
					Aliases: spec.Aliases,
				})
			} else if opts.LogMissingOptional {
				r.add(Diagnostic{
					Kind:    KindMissingOptionalField,
					Message: fmt.Sprintf("optional field %q not found", spec.Name),
					Context: "header resolution",
					Field:   spec.Name,
					Aliases: spec.Aliases,
				})
			}
		}

		mapping.index[spec.Name] = len(mapping.Matches)
		mapping.Matches = append(mapping.Matches, match)
	}

	var unclaimed []string
	seen := make(map[string]bool)
	for i, h := range headers {
		if claimed[i] || norm[i] == "" || seen[norm[i]] {
			continue
		}
		seen[norm[i]] = true
		unclaimed = append(unclaimed, h)
	}
	if len(unclaimed) > 0 {
		r.add(Diagnostic{
			Kind:    KindUnmappedColumns,
			Message: fmt.Sprintf("columns not claimed by any field: %s", strings.Join(unclaimed, ", ")),
			Context: "header resolution",
			Aliases: unclaimed,
		})
	}

	return mapping
}

// missingRequired lists required fields that did not resolve to a column.
func missingRequired(mapping FieldMapping) []string {
	var missing []string
	for _, m := range mapping.Matches {
		if m.Required && m.Status != MatchFound {
			missing = append(missing, m.Field)
		}
	}
	return missing
}
