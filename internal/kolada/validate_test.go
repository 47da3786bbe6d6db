package kolada

import (
	"errors"
	"testing"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		kpiID   string
		value   float64
		wantErr bool
	}{
		{"population within bounds", "N01900", 100_000, false},
		{"population at lower bound", "N01900", 50_000, false},
		{"population at upper bound", "N01900", 150_000, false},
		{"population too small", "N01900", 10_000, true},
		{"population too large", "N01900", 200_000, true},
		{"violent crime within bounds", "N07403", 850, false},
		{"violent crime negative", "N07403", -1, true},
		{"violent crime too large", "N07403", 2_500, true},
		{"financial result negative ok", "N03101", -500, false},
		{"financial result too negative", "N03101", -1_500, true},
		{"generic N non-negative", "N99999", 42, false},
		{"generic N negative rejected", "N99999", -0.1, true},
		{"generic P within range", "P12345", 55, false},
		{"generic P above 100 rejected", "P12345", 101, true},
		{"generic P negative rejected", "P12345", -5, true},
		{"unknown prefix accepted", "U23471", -999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.kpiID, tt.value)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("ValidateValue(%s, %g) = %v, want *ValidationError", tt.kpiID, tt.value, err)
				}
				if verr.KPIID != tt.kpiID || verr.Value != tt.value {
					t.Errorf("ValidationError = %+v, want kpi %s value %g", verr, tt.kpiID, tt.value)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateValue(%s, %g) = %v, want nil", tt.kpiID, tt.value, err)
			}
		})
	}
}

func TestValidateValue_SpecificBoundsWinOverPrefix(t *testing.T) {
	// The generic N rule would accept any non-negative number; the specific
	// interval for N01900 must reject an implausible population anyway.
	if err := ValidateValue("N01900", 10_000); err == nil {
		t.Error("expected specific bounds to reject 10000 for N01900")
	}
}
