package statistics

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hazzler78/sd-motion-generator/internal/bra"
	"github.com/hazzler78/sd-motion-generator/internal/kolada"
	"github.com/hazzler78/sd-motion-generator/internal/logger"
)

// kpiResolver is the slice of the Kolada resolver the service needs.
type kpiResolver interface {
	Resolve(ctx context.Context, kpiID, municipalityID string, targetYear, maxFallbackYears int) (kolada.KPIDataPoint, error)
}

// crimeSource is the slice of the BRÅ scraper the service needs.
type crimeSource interface {
	CrimeStatistics(ctx context.Context, year int, facet string) (bra.CrimeStatistics, error)
}

// Statistic is one resolved statistic: presentation text plus the typed data
// it was rendered from. Available is false when the statistic degraded to an
// unavailable message.
type Statistic struct {
	Type      Type                 `json:"type"`
	Text      string               `json:"text"`
	Trend     string               `json:"trend,omitempty"`
	Data      *kolada.KPIDataPoint `json:"data,omitempty"`
	Crime     *bra.CrimeStatistics `json:"crime,omitempty"`
	Available bool                 `json:"available"`
}

// Service resolves statistic requests against Kolada and BRÅ. Lookup
// failures degrade to an unavailable message rather than failing the
// request; the generated document flow prefers a gap over an error.
type Service struct {
	registry         *Registry
	resolver         kpiResolver
	crimes           crimeSource
	maxFallbackYears int
}

// NewService wires a statistics service.
func NewService(registry *Registry, resolver kpiResolver, crimes crimeSource, maxFallbackYears int) *Service {
	if maxFallbackYears <= 0 {
		maxFallbackYears = 2
	}
	return &Service{
		registry:         registry,
		resolver:         resolver,
		crimes:           crimes,
		maxFallbackYears: maxFallbackYears,
	}
}

// Registry exposes the service's type registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// FetchStatistic resolves one statistic for a municipality and year. The
// bra_statistik type routes to the BRÅ scraper; everything else goes through
// the Kolada fallback resolver. The previous year is fetched concurrently
// for the trend line; a missing trend never blocks the statistic.
func (s *Service) FetchStatistic(ctx context.Context, t Type, year int, municipality string) Statistic {
	result := Statistic{Type: t}

	cfg, ok := s.registry.Config(t)
	if !ok {
		result.Text = fmt.Sprintf("Okänd statistiktyp: %s", t)
		return result
	}

	if t == TypeBraStatistik {
		return s.fetchCrimeStatistic(ctx, cfg, year)
	}

	municipalityID, ok := MunicipalityID(municipality)
	if !ok {
		result.Text = fmt.Sprintf("Okänd kommun: %s", municipality)
		return result
	}

	var (
		current, previous kolada.KPIDataPoint
		currErr, prevErr  error
	)

	// Current and previous year are independent reads; fetch them in
	// parallel. Only the current year uses fallback.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current, currErr = s.resolver.Resolve(gctx, cfg.KPIID, municipalityID, year, s.maxFallbackYears)
		return nil
	})
	g.Go(func() error {
		previous, prevErr = s.resolver.Resolve(gctx, cfg.KPIID, municipalityID, year-1, 0)
		return nil
	})
	_ = g.Wait()

	if currErr != nil {
		return s.unavailableStatistic(t, cfg, municipality, year, currErr)
	}

	result.Text = FormatStatistic(cfg, municipality, current)
	result.Data = &current
	result.Available = true
	if prevErr == nil {
		result.Trend = FormatTrend(cfg, municipality, current, previous)
	}
	return result
}

func (s *Service) fetchCrimeStatistic(ctx context.Context, cfg KPIConfig, year int) Statistic {
	result := Statistic{Type: TypeBraStatistik}

	stats, err := s.crimes.CrimeStatistics(ctx, year, "")
	if err != nil {
		logger.Warn("crime statistics unavailable", "year", year, "error", err)
		result.Text = fmt.Sprintf("Statistik för %s är inte tillgänglig för år %d", cfg.Name, year)
		return result
	}

	result.Text = FormatCrimeStatistic(cfg, stats)
	result.Crime = &stats
	result.Available = true
	return result
}

func (s *Service) unavailableStatistic(t Type, cfg KPIConfig, municipality string, year int, err error) Statistic {
	result := Statistic{Type: t}

	var validationErr *kolada.ValidationError
	var noDataErr *kolada.NoDataError
	switch {
	case errors.As(err, &validationErr):
		logger.Error("invalid statistic value", "type", t, "municipality", municipality, "error", err)
		result.Text = fmt.Sprintf("Statistik för %s i %s kunde inte valideras", cfg.Name, municipality)
	case errors.As(err, &noDataErr):
		logger.Warn("no statistic data", "type", t, "municipality", municipality, "error", err)
		result.Text = fmt.Sprintf("Statistik för %s är inte tillgänglig för %s år %d", cfg.Name, municipality, year)
	default:
		logger.Error("statistic fetch failed", "type", t, "municipality", municipality, "error", err)
		result.Text = fmt.Sprintf("Ett fel uppstod vid hämtning av statistik för %s i %s", cfg.Name, municipality)
	}
	return result
}
