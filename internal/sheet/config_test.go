package sheet

import (
	"context"
	"testing"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func baseConfig() Config {
	return Config{
		SheetURL: "https://example.org/sheet.csv",
		Fields: []FieldSpec{
			{Name: "year", Aliases: []string{"Year"}, Required: true},
			{Name: "title", Aliases: []string{"Title"}, Required: true},
		},
		Validation: ValidationOptions{
			StrictMode:         true,
			LogMissingOptional: true,
			ValidateURLs:       true,
			ValidateYears:      true,
		},
	}
}

// ============================================================================
// Partial updates
// ============================================================================

func TestUpdateConfig_SingleToggleLeavesRestUnchanged(t *testing.T) {
	p := NewProcessor(baseConfig(), stubFetcher{})

	p.UpdateConfig(ConfigUpdate{
		Validation: &ValidationUpdate{ValidateURLs: boolPtr(false)},
	})

	got := p.Config()
	if got.Validation.ValidateURLs {
		t.Error("ValidateURLs should be off")
	}
	if !got.Validation.StrictMode || !got.Validation.LogMissingOptional || !got.Validation.ValidateYears {
		t.Errorf("other toggles changed: %+v", got.Validation)
	}
	if len(got.Fields) != 2 {
		t.Errorf("field specs changed: %d fields", len(got.Fields))
	}
	if got.SheetURL != "https://example.org/sheet.csv" {
		t.Errorf("sheet URL changed: %q", got.SheetURL)
	}
}

func TestUpdateConfig_SheetURL(t *testing.T) {
	p := NewProcessor(baseConfig(), stubFetcher{})

	p.UpdateConfig(ConfigUpdate{SheetURL: strPtr("https://example.org/v2.csv")})

	got := p.Config()
	if got.SheetURL != "https://example.org/v2.csv" {
		t.Errorf("SheetURL = %q", got.SheetURL)
	}
	if !got.Validation.StrictMode {
		t.Error("validation toggles must be untouched")
	}
}

func TestUpdateConfig_FieldsMergeByName(t *testing.T) {
	p := NewProcessor(baseConfig(), stubFetcher{})

	p.UpdateConfig(ConfigUpdate{
		Fields: []FieldSpec{
			{Name: "year", Aliases: []string{"Year", "Yr"}, Required: false},
			{Name: "category", Aliases: []string{"Category"}},
		},
	})

	got := p.Config().Fields
	if len(got) != 3 {
		t.Fatalf("fields = %d, want 3 (year replaced, category appended)", len(got))
	}
	if got[0].Name != "year" || len(got[0].Aliases) != 2 || got[0].Required {
		t.Errorf("year spec not replaced in place: %+v", got[0])
	}
	if got[1].Name != "title" {
		t.Errorf("title spec moved or changed: %+v", got[1])
	}
	if got[2].Name != "category" {
		t.Errorf("new spec not appended: %+v", got[2])
	}
}

func TestUpdateConfig_EmptyUpdateIsNoop(t *testing.T) {
	p := NewProcessor(baseConfig(), stubFetcher{})
	before := p.Config()

	p.UpdateConfig(ConfigUpdate{})

	after := p.Config()
	if after.SheetURL != before.SheetURL ||
		after.Validation != before.Validation ||
		after.Debug != before.Debug ||
		len(after.Fields) != len(before.Fields) {
		t.Errorf("empty update changed config: %+v -> %+v", before, after)
	}
}

func TestUpdateConfig_AppliesToNextLoad(t *testing.T) {
	// Strict mode on: missing required title aborts. After switching it
	// off, the same sheet processes rows.
	csvData := "Year\n1999\n"
	p := NewProcessor(baseConfig(), stubFetcher{data: []byte(csvData)})

	first := p.LoadAndProcess(context.Background())
	if len(first.Rows) != 0 {
		t.Fatalf("strict load should process no rows, got %d", len(first.Rows))
	}

	p.UpdateConfig(ConfigUpdate{
		Validation: &ValidationUpdate{StrictMode: boolPtr(false)},
	})

	second := p.LoadAndProcess(context.Background())
	if len(second.Rows) != 1 {
		t.Fatalf("non-strict load should process rows, got %d", len(second.Rows))
	}
}

func TestFieldSpecs_ReturnsCopy(t *testing.T) {
	p := NewProcessor(baseConfig(), stubFetcher{})

	specs := p.FieldSpecs()
	specs[0].Name = "mutated"

	if p.FieldSpecs()[0].Name != "year" {
		t.Error("FieldSpecs must return a copy, not the live slice")
	}
}
