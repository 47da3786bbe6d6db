package statistics

import (
	"testing"

	"github.com/hazzler78/sd-motion-generator/internal/bra"
	"github.com/hazzler78/sd-motion-generator/internal/kolada"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		kind  FormatKind
		want  string
	}{
		{"number with thousands grouping", 95000, FormatNumber, "95 000"},
		{"number under a thousand", 850, FormatNumber, "850"},
		{"large number", 1480000, FormatNumber, "1 480 000"},
		{"percent one decimal", 5.25, FormatPercent, "5.2"},
		{"percent whole", 7, FormatPercent, "7.0"},
		{"percent negative", -3.2, FormatPercent, "-3.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatValue(tt.value, tt.kind)
			if got != tt.want {
				t.Errorf("FormatValue(%g, %s) = %q, want %q", tt.value, tt.kind, got, tt.want)
			}
		})
	}
}

func TestFormatStatistic(t *testing.T) {
	cfg, ok := NewRegistry().Config(TypeBefolkning)
	if !ok {
		t.Fatal("befolkning config missing")
	}

	got := FormatStatistic(cfg, "karlstad", kolada.KPIDataPoint{Value: 95000, Year: 2024})
	want := "Karlstad har 95 000 invånare (2024)"
	if got != want {
		t.Errorf("FormatStatistic() = %q, want %q", got, want)
	}
}

func TestFormatStatistic_Percent(t *testing.T) {
	cfg, ok := NewRegistry().Config(TypeArbetsmarknad)
	if !ok {
		t.Fatal("arbetsmarknad config missing")
	}

	got := FormatStatistic(cfg, "arvika", kolada.KPIDataPoint{Value: 8.4, Year: 2023})
	want := "Arbetslösheten i Arvika är 8.4% (2023)"
	if got != want {
		t.Errorf("FormatStatistic() = %q, want %q", got, want)
	}
}

func TestFormatTrend(t *testing.T) {
	cfg, ok := NewRegistry().Config(TypeBefolkning)
	if !ok {
		t.Fatal("befolkning config missing")
	}

	got := FormatTrend(cfg, "karlstad",
		kolada.KPIDataPoint{Value: 95000, Year: 2024},
		kolada.KPIDataPoint{Value: 94000, Year: 2023},
	)
	want := "Befolkningsutveckling i Karlstad: 94 000 (2023) → 95 000 (2024)"
	if got != want {
		t.Errorf("FormatTrend() = %q, want %q", got, want)
	}
}

func TestFormatCrimeStatistic(t *testing.T) {
	cfg, ok := NewRegistry().Config(TypeBraStatistik)
	if !ok {
		t.Fatal("bra_statistik config missing")
	}

	got := FormatCrimeStatistic(cfg, bra.CrimeStatistics{
		TotalCrimes:   95000,
		CrimesPer100k: 904.8,
		Year:          2023,
	})
	want := "Under 2023 anmäldes 95 000 brott i Sverige, vilket motsvarar 904.8 brott per 100 000 invånare"
	if got != want {
		t.Errorf("FormatCrimeStatistic() = %q, want %q", got, want)
	}
}
