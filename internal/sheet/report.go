package sheet

// report.go renders a ProcessingResult as a deterministic, human-readable
// summary. Diagnostic groups follow first-occurrence order of each kind in
// the underlying list, so the report is stable for a fixed result.

import (
	"fmt"
	"strings"
)

const (
	maxErrorExamples   = 3
	maxWarningExamples = 2
)

// GenerateSummaryReport renders the multi-section text report for a result:
// overall status and counts, per-field mapping outcomes, then errors and
// warnings grouped by kind with a capped number of example messages.
func GenerateSummaryReport(result *ProcessingResult) string {
	var b strings.Builder

	b.WriteString("Spreadsheet Processing Report\n")
	b.WriteString("=============================\n")
	if result.Success {
		b.WriteString("Status: SUCCESS\n")
	} else {
		b.WriteString("Status: FAILED\n")
	}
	fmt.Fprintf(&b, "Total rows: %d\n", result.TotalRows)
	fmt.Fprintf(&b, "Valid rows: %d\n", result.ValidRows)
	fmt.Fprintf(&b, "Errors: %d\n", len(result.Errors))
	fmt.Fprintf(&b, "Warnings: %d\n", len(result.Warnings))

	if len(result.Mapping.Matches) > 0 {
		b.WriteString("\nField Mapping\n")
		b.WriteString("-------------\n")
		for _, m := range result.Mapping.Matches {
			if m.Status == MatchFound {
				fmt.Fprintf(&b, "  %-22s -> %q\n", m.Field, m.Column)
			} else if m.Required {
				fmt.Fprintf(&b, "  %-22s -> NOT FOUND (required)\n", m.Field)
			} else {
				fmt.Fprintf(&b, "  %-22s -> not found (optional)\n", m.Field)
			}
		}
	}

	writeGroups(&b, "Errors", result.Errors, maxErrorExamples)
	writeGroups(&b, "Warnings", result.Warnings, maxWarningExamples)

	return b.String()
}

// writeGroups renders one diagnostic section grouped by kind. Each group
// shows its count, up to maxExamples messages, and an elision line when
// truncated.
func writeGroups(b *strings.Builder, title string, diags []Diagnostic, maxExamples int) {
	if len(diags) == 0 {
		return
	}

	var order []Kind
	groups := make(map[Kind][]Diagnostic)
	for _, d := range diags {
		if _, seen := groups[d.Kind]; !seen {
			order = append(order, d.Kind)
		}
		groups[d.Kind] = append(groups[d.Kind], d)
	}

	fmt.Fprintf(b, "\n%s\n", title)
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteString("\n")

	for _, kind := range order {
		group := groups[kind]
		fmt.Fprintf(b, "%s (%d):\n", kind, len(group))
		shown := len(group)
		if shown > maxExamples {
			shown = maxExamples
		}
		for _, d := range group[:shown] {
			fmt.Fprintf(b, "  - %s\n", d.Message)
		}
		if len(group) > shown {
			fmt.Fprintf(b, "  ... and %d more\n", len(group)-shown)
		}
	}
}
