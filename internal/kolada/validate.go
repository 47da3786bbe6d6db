package kolada

import (
	"fmt"
	"strings"
)

// boundsRule is an inclusive plausibility interval for one indicator.
type boundsRule struct {
	Min, Max float64
}

// Indicator-specific bounds. These win over the generic prefix rules.
var specificBounds = map[string]boundsRule{
	"N01900": {Min: 50_000, Max: 150_000}, // population (Karlstad)
	"N07403": {Min: 0, Max: 2_000},        // violent crime per 100k
	"N03101": {Min: -1_000, Max: 1_000},   // financial result (mkr)
}

// ValidateValue checks a fetched value against plausibility bounds for its
// indicator. Exactly one rule applies: an indicator-specific interval when
// registered, otherwise a generic rule by id prefix ("N" requires a
// non-negative number, "P" a 0-100 percentage). Indicators matching neither
// are accepted unconditionally.
//
// A nil return means the value passed; failures are always reported as a
// *ValidationError, never a bare bool, so call sites compose with the rest
// of the error taxonomy.
func ValidateValue(kpiID string, value float64) error {
	if rule, ok := specificBounds[kpiID]; ok {
		if value < rule.Min || value > rule.Max {
			return &ValidationError{
				KPIID: kpiID,
				Value: value,
				Rule:  fmt.Sprintf("expected %g..%g", rule.Min, rule.Max),
			}
		}
		return nil
	}

	switch {
	case strings.HasPrefix(kpiID, "N"):
		if value < 0 {
			return &ValidationError{KPIID: kpiID, Value: value, Rule: "numeric indicators must be non-negative"}
		}
	case strings.HasPrefix(kpiID, "P"):
		if value < 0 || value > 100 {
			return &ValidationError{KPIID: kpiID, Value: value, Rule: "percentage indicators must be within 0..100"}
		}
	}

	return nil
}
