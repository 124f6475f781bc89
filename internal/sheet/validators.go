package sheet

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MinYear is the lower bound for year validation. The upper bound floats at
// the current year plus YearSlack so future-dated entries stay loadable.
const (
	MinYear   = 1900
	YearSlack = 10
)

// Validator checks a raw cell value. Implementations must be pure: the same
// input always yields the same answer within one load.
type Validator interface {
	Validate(raw string) bool
}

// ValidatorFunc adapts a plain function to the Validator interface, the slot
// for caller-supplied checks in a FieldSpec.
type ValidatorFunc func(raw string) bool

func (f ValidatorFunc) Validate(raw string) bool { return f(raw) }

// YearRange validates that a value parses as an integer within [Min, Max].
// A zero Max means "current year plus YearSlack", evaluated at call time.
type YearRange struct {
	Min int
	Max int
}

func (y YearRange) Validate(raw string) bool {
	_, ok := y.parse(raw)
	return ok
}

func (y YearRange) parse(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	min := y.Min
	if min == 0 {
		min = MinYear
	}
	max := y.Max
	if max == 0 {
		max = time.Now().Year() + YearSlack
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

// WellFormedURL validates that a value parses as an absolute URL.
// Mirrors the check applied to link fields during row processing.
type WellFormedURL struct{}

func (WellFormedURL) Validate(raw string) bool { return validURL(raw) }

// validURL reports whether s is an absolute URL with a scheme and host.
// Relative paths and bare words parse fine with url.Parse, so both parts
// are required to call the value well-formed.
func validURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// parseYear canonicalizes a year value using the default range. The stored
// value is the parsed integer rendered back as text, not the raw string.
func parseYear(raw string) (string, bool) {
	n, ok := YearRange{}.parse(raw)
	if !ok {
		return "", false
	}
	return strconv.Itoa(n), true
}
