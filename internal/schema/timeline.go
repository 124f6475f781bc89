// Package schema defines the field table for the timeline sheet: which
// canonical fields the processor looks for, the header aliases editors have
// used for them over the years, and the display keys the visualization
// consumes.
package schema

import "sheetfeed/internal/sheet"

// TimelineFields returns the default FieldSpecs for the timeline sheet.
// Alias order matters: the first alias is the canonical header, the rest are
// spellings seen in older revisions of the sheet.
func TimelineFields() []sheet.FieldSpec {
	return []sheet.FieldSpec{
		{
			Name:        "year",
			Aliases:     []string{"Year", "Date", "When"},
			Required:    true,
			Description: "Year the event occurred",
			OutputName:  "Year",
		},
		{
			Name:        "title",
			Aliases:     []string{"Title", "Event", "Headline"},
			Required:    true,
			Description: "Short event title shown on the timeline",
			OutputName:  "Headline",
		},
		{
			Name:        "description",
			Aliases:     []string{"Description", "Details", "Summary"},
			Description: "Longer event text",
			OutputName:  "Text",
		},
		{
			Name:        "category",
			Aliases:     []string{"Category", "Type", "Tag"},
			Description: "Grouping label for timeline lanes",
			OutputName:  "Group",
		},
		{
			Name:        "archive",
			Aliases:     []string{"Archive", "Archive Link", "Archival Record"},
			Description: "Link to the archival record",
			OutputName:  "Archive Link",
		},
		{
			Name:        "petition",
			Aliases:     []string{"Petition", "Petition Link"},
			Description: "Link to the petition document",
			OutputName:  "Petition Link",
		},
		{
			Name:        "additionalDocuments",
			Aliases:     []string{"Additional Documents", "Additional Docs", "Supporting Documents", "Documents"},
			Description: "Link to supporting documents",
			OutputName:  "Additional Documents",
		},
		{
			Name:        "order",
			Aliases:     []string{"Order", "Order Link", "Court Order"},
			Description: "Link to the order document",
			OutputName:  "Order Link",
		},
	}
}
