package bra

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hazzler78/sd-motion-generator/internal/fetch"
	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/metrics"
)

// DefaultStatisticsURL is BRÅ's published crime statistics page.
const DefaultStatisticsURL = "https://bra.se/statistik/kriminalstatistik.html"

// Trend classification thresholds: total must move more than 5% between the
// first and last sampled year to leave "stable".
const trendThreshold = 0.05

// Scraper fetches the crime statistics page and extracts typed records,
// memoized per (year, facet). The same page is parsed regardless of the
// requested facet; the facet only distinguishes cache entries.
type Scraper struct {
	fetcher fetch.Fetcher
	pageURL string
	cache   *Cache
}

// NewScraper creates a scraper reading from pageURL. An empty pageURL uses
// DefaultStatisticsURL.
func NewScraper(fetcher fetch.Fetcher, pageURL string) *Scraper {
	if pageURL == "" {
		pageURL = DefaultStatisticsURL
	}
	return &Scraper{
		fetcher: fetcher,
		pageURL: pageURL,
		cache:   NewCache(),
	}
}

// CrimeStatistics returns the extracted record for a year and optional
// facet. Transport failures are returned as errors; extraction problems
// degrade to zero values inside the record.
func (s *Scraper) CrimeStatistics(ctx context.Context, year int, facet string) (CrimeStatistics, error) {
	return s.cache.GetOrCompute(year, facet, func() (CrimeStatistics, error) {
		page, err := s.fetcher.Fetch(ctx, s.pageURL)
		if err != nil {
			metrics.ScrapeFetches.WithLabelValues("error").Inc()
			return CrimeStatistics{}, fmt.Errorf("fetch crime statistics: %w", err)
		}
		metrics.ScrapeFetches.WithLabelValues("ok").Inc()

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			// Unparsable markup degrades to a zero record, same as a page
			// with no recognizable content.
			logger.Warn("crime statistics page unparsable", "url", s.pageURL, "error", err)
			doc = nil
		}
		return ExtractStatistics(doc, year), nil
	})
}

// CrimeTrend summarizes total reported crimes across a span of years.
type CrimeTrend struct {
	Years  []int  `json:"years"`
	Values []int  `json:"values"`
	Trend  string `json:"trend"`
}

// CrimeTrends samples each year in [startYear, endYear] and classifies the
// movement of total crimes as increasing, decreasing or stable. Years that
// fail to fetch are skipped.
func (s *Scraper) CrimeTrends(ctx context.Context, startYear, endYear int, facet string) CrimeTrend {
	trend := CrimeTrend{Trend: "stable"}

	for year := startYear; year <= endYear; year++ {
		stats, err := s.CrimeStatistics(ctx, year, facet)
		if err != nil {
			logger.Warn("skipping year in trend analysis", "year", year, "error", err)
			continue
		}
		trend.Years = append(trend.Years, year)
		trend.Values = append(trend.Values, stats.TotalCrimes)
	}

	if len(trend.Values) >= 2 {
		first := float64(trend.Values[0])
		last := float64(trend.Values[len(trend.Values)-1])
		switch {
		case last > first*(1+trendThreshold):
			trend.Trend = "increasing"
		case last < first*(1-trendThreshold):
			trend.Trend = "decreasing"
		}
	}

	return trend
}

// CacheSize reports how many (year, facet) variants are memoized.
func (s *Scraper) CacheSize() int {
	return s.cache.Len()
}
