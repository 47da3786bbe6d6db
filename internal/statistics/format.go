package statistics

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hazzler78/sd-motion-generator/internal/bra"
	"github.com/hazzler78/sd-motion-generator/internal/kolada"
)

var (
	swedishPrinter = message.NewPrinter(language.Swedish)
	swedishTitle   = cases.Title(language.Swedish)
)

// FormatValue renders a value for presentation: whole numbers get a space as
// thousands separator, percents one decimal with a dot.
func FormatValue(value float64, kind FormatKind) string {
	switch kind {
	case FormatPercent:
		return strconv.FormatFloat(value, 'f', 1, 64)
	default:
		// The Swedish locale groups with a non-breaking space; the generated
		// prose uses a plain space.
		s := swedishPrinter.Sprintf("%.0f", value)
		return strings.ReplaceAll(s, "\u00a0", " ")
	}
}

// FormatStatistic renders one data point using the type's template.
func FormatStatistic(cfg KPIConfig, municipality string, point kolada.KPIDataPoint) string {
	return strings.NewReplacer(
		"{municipality}", swedishTitle.String(municipality),
		"{value}", FormatValue(point.Value, cfg.Format),
		"{year}", strconv.Itoa(point.Year),
	).Replace(cfg.StatTemplate)
}

// FormatTrend renders a year-over-year trend line using the type's template.
func FormatTrend(cfg KPIConfig, municipality string, current, previous kolada.KPIDataPoint) string {
	return strings.NewReplacer(
		"{municipality}", swedishTitle.String(municipality),
		"{current_value}", FormatValue(current.Value, cfg.Format),
		"{current_year}", strconv.Itoa(current.Year),
		"{previous_value}", FormatValue(previous.Value, cfg.Format),
		"{previous_year}", strconv.Itoa(previous.Year),
	).Replace(cfg.TrendTemplate)
}

// FormatCrimeStatistic renders a scraped national crime record.
func FormatCrimeStatistic(cfg KPIConfig, stats bra.CrimeStatistics) string {
	return strings.NewReplacer(
		"{value}", FormatValue(float64(stats.TotalCrimes), FormatNumber),
		"{year}", strconv.Itoa(stats.Year),
		"{crimes_per_100k}", strconv.FormatFloat(stats.CrimesPer100k, 'f', 1, 64),
		"{change}", strconv.FormatFloat(stats.ChangeFromPreviousYear, 'f', 1, 64),
	).Replace(cfg.StatTemplate)
}
