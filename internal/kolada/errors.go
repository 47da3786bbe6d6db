package kolada

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUpstream marks transport-level failures talking to the Kolada API:
// timeouts, malformed responses, unexpected status codes. Callers may retry
// these; the typed errors below are expected outcomes.
var ErrUpstream = errors.New("kolada upstream request failed")

// ErrNoAvailableYear signals that no year with valid data exists for an
// indicator and municipality.
var ErrNoAvailableYear = errors.New("no year with valid data available")

// InvalidKPIError is returned when an indicator id is unknown to the
// metadata source.
type InvalidKPIError struct {
	KPIID string
}

func (e *InvalidKPIError) Error() string {
	return fmt.Sprintf("no KPI with id %s found", e.KPIID)
}

// ValidationError is returned when a fetched value fails its plausibility
// bounds. It is an expected, recoverable condition.
type ValidationError struct {
	KPIID string
	Value float64
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("value %g for KPI %s is outside plausible bounds (%s)", e.Value, e.KPIID, e.Rule)
}

// AttemptFailure records why one year failed during fallback resolution.
type AttemptFailure struct {
	Year int
	Err  error
}

// NoDataError is returned when no usable data exists for an indicator,
// municipality and year, including after fallback. Attempts carries the
// per-year failure chain in the order the years were tried.
type NoDataError struct {
	KPIID          string
	MunicipalityID string
	Year           int
	Attempts       []AttemptFailure
}

func (e *NoDataError) Error() string {
	msg := fmt.Sprintf("no data available for KPI %s, municipality %s, year %d",
		e.KPIID, e.MunicipalityID, e.Year)
	if len(e.Attempts) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString(" (tried:")
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, " %d: %v;", a.Year, a.Err)
	}
	sb.WriteString(")")
	return sb.String()
}

// recoverable reports whether an error is an expected per-year failure that
// the fallback loop may continue past.
func recoverable(err error) bool {
	var noData *NoDataError
	var invalid *ValidationError
	return errors.As(err, &noData) || errors.As(err, &invalid)
}
