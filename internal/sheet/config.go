package sheet

// config.go holds the processor configuration and the partial-update merge.
// Field specs and validation toggles merge key-by-key: an update only touches
// what it names, everything else keeps its current value.

// ValidationOptions are the per-load validation toggles.
type ValidationOptions struct {
	// StrictMode aborts the whole load when any required field has no
	// matching column. Off, rows fail per-row required-value checks instead.
	StrictMode bool

	// LogMissingOptional emits a warning for each optional field without a
	// matching column.
	LogMissingOptional bool

	// ValidateURLs checks link-field values parse as absolute URLs.
	// Failures are warnings; the value is still stored.
	ValidateURLs bool

	// ValidateYears checks the year field parses as an integer within range
	// and canonicalizes the stored value.
	ValidateYears bool
}

// Config is the full processor configuration. The field list is ordered:
// mapping reports and row values follow declaration order.
type Config struct {
	SheetURL   string
	Fields     []FieldSpec
	Validation ValidationOptions
	Debug      bool // gates per-diagnostic slog output
}

// ConfigUpdate is a partial configuration change. Nil pointers and empty
// slices leave the current value untouched.
type ConfigUpdate struct {
	SheetURL   *string
	Fields     []FieldSpec // merged by canonical name; unknown names append
	Validation *ValidationUpdate
	Debug      *bool
}

// ValidationUpdate updates individual toggles; nil means keep current.
type ValidationUpdate struct {
	StrictMode         *bool
	LogMissingOptional *bool
	ValidateURLs       *bool
	ValidateYears      *bool
}

// merge applies an update to a copy of the config and returns it.
func (c Config) merge(u ConfigUpdate) Config {
	if u.SheetURL != nil {
		c.SheetURL = *u.SheetURL
	}
	if len(u.Fields) > 0 {
		fields := make([]FieldSpec, len(c.Fields))
		copy(fields, c.Fields)
		for _, spec := range u.Fields {
			replaced := false
			for i := range fields {
				if fields[i].Name == spec.Name {
					fields[i] = spec
					replaced = true
					break
				}
			}
			if !replaced {
				fields = append(fields, spec)
			}
		}
		c.Fields = fields
	}
	if u.Validation != nil {
		if u.Validation.StrictMode != nil {
			c.Validation.StrictMode = *u.Validation.StrictMode
		}
		if u.Validation.LogMissingOptional != nil {
			c.Validation.LogMissingOptional = *u.Validation.LogMissingOptional
		}
		if u.Validation.ValidateURLs != nil {
			c.Validation.ValidateURLs = *u.Validation.ValidateURLs
		}
		if u.Validation.ValidateYears != nil {
			c.Validation.ValidateYears = *u.Validation.ValidateYears
		}
	}
	if u.Debug != nil {
		c.Debug = *u.Debug
	}
	return c
}
