package kolada

import (
	"context"

	"github.com/hazzler78/sd-motion-generator/internal/logger"
)

// DataSource is the slice of the client the resolver needs. *Client
// satisfies it; tests substitute a fake.
type DataSource interface {
	MunicipalityData(ctx context.Context, kpiID, municipalityID string, year int) (KPIDataPoint, error)
	AvailableYears(ctx context.Context, kpiID, municipalityID string) ([]int, error)
}

// Resolver retries a KPI fetch across a bounded window of prior years when
// the target year is unavailable or fails validation.
type Resolver struct {
	source DataSource
}

// NewResolver creates a resolver backed by the given source.
func NewResolver(source DataSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve fetches data for the target year, falling back through the
// indicator's available years within [targetYear-maxFallbackYears,
// targetYear]. The returned data point's Year is the year the data actually
// came from, which may differ from targetYear.
//
// Missing data and validation failures continue the walk; anything else
// (transport failure, unknown indicator) aborts it. When every year in the
// window fails, the *NoDataError carries the ordered per-year failure chain.
func (r *Resolver) Resolve(ctx context.Context, kpiID, municipalityID string, targetYear, maxFallbackYears int) (KPIDataPoint, error) {
	var attempts []AttemptFailure

	point, err := r.source.MunicipalityData(ctx, kpiID, municipalityID, targetYear)
	if err == nil {
		return point, nil
	}
	if !recoverable(err) {
		return KPIDataPoint{}, err
	}
	attempts = append(attempts, AttemptFailure{Year: targetYear, Err: err})

	years, err := r.source.AvailableYears(ctx, kpiID, municipalityID)
	if err != nil {
		// The year listing is an optimization; if it fails the walk ends
		// with what we know.
		logger.Warn("could not list available years", "kpi", kpiID, "error", err)
	}

	for _, year := range years {
		if year >= targetYear || year < targetYear-maxFallbackYears {
			continue
		}
		point, err := r.source.MunicipalityData(ctx, kpiID, municipalityID, year)
		if err == nil {
			logger.Debug("resolved KPI via fallback year",
				"kpi", kpiID, "target_year", targetYear, "year", year)
			return point, nil
		}
		if !recoverable(err) {
			return KPIDataPoint{}, err
		}
		attempts = append(attempts, AttemptFailure{Year: year, Err: err})
	}

	return KPIDataPoint{}, &NoDataError{
		KPIID:          kpiID,
		MunicipalityID: municipalityID,
		Year:           targetYear,
		Attempts:       attempts,
	}
}

// LatestAvailableYear walks the indicator's available years, most recent
// first, and returns the first one whose data fetches and validates.
// ErrNoAvailableYear is returned when none do.
func (r *Resolver) LatestAvailableYear(ctx context.Context, kpiID, municipalityID string) (int, error) {
	years, err := r.source.AvailableYears(ctx, kpiID, municipalityID)
	if err != nil {
		return 0, err
	}

	for _, year := range years {
		_, err := r.source.MunicipalityData(ctx, kpiID, municipalityID, year)
		if err == nil {
			return year, nil
		}
		if !recoverable(err) {
			return 0, err
		}
	}

	return 0, ErrNoAvailableYear
}
