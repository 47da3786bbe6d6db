package statistics

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// FormatKind controls how a value renders in presentation text.
type FormatKind string

const (
	FormatNumber  FormatKind = "number"
	FormatPercent FormatKind = "percent"
)

// KPIConfig binds a statistic type to its Kolada indicator and templates.
// Templates use {municipality}, {value}, {year} and, for trends,
// {previous_value}, {previous_year}, {current_value}, {current_year}.
type KPIConfig struct {
	Name          string     `yaml:"name"`
	KPIID         string     `yaml:"kpi_id"`
	Format        FormatKind `yaml:"format"`
	StatTemplate  string     `yaml:"stat_template"`
	TrendTemplate string     `yaml:"trend_template"`
}

var defaultConfigs = map[Type]KPIConfig{
	TypeBefolkning: {
		Name:          "Befolkning",
		KPIID:         "N01900",
		Format:        FormatNumber,
		StatTemplate:  "{municipality} har {value} invånare ({year})",
		TrendTemplate: "Befolkningsutveckling i {municipality}: {previous_value} ({previous_year}) → {current_value} ({current_year})",
	},
	TypeInvandring: {
		Name:          "Utrikes födda",
		KPIID:         "N02955",
		Format:        FormatPercent,
		StatTemplate:  "{municipality} har {value}% utrikes födda invånare ({year})",
		TrendTemplate: "Utveckling utrikes födda i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeArbetsmarknad: {
		Name:          "Arbetslöshet",
		KPIID:         "N00914",
		Format:        FormatPercent,
		StatTemplate:  "Arbetslösheten i {municipality} är {value}% ({year})",
		TrendTemplate: "Utveckling arbetslöshet i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeTrygghet: {
		Name:          "Våldsbrott",
		KPIID:         "N07403",
		Format:        FormatNumber,
		StatTemplate:  "I {municipality} anmäldes {value} våldsbrott per 100 000 invånare ({year})",
		TrendTemplate: "Utveckling av våldsbrott i {municipality}: {previous_value} ({previous_year}) → {current_value} ({current_year})",
	},
	TypeEkonomi: {
		Name:          "Ekonomiskt resultat",
		KPIID:         "N03101",
		Format:        FormatPercent,
		StatTemplate:  "{municipality}s ekonomiska resultat var {value}% av skatter och statsbidrag ({year})",
		TrendTemplate: "Ekonomisk utveckling i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeSkattesats: {
		Name:          "Kommunal skattesats",
		KPIID:         "N00406",
		Format:        FormatPercent,
		StatTemplate:  "Den kommunala skattesatsen i {municipality} är {value}% ({year})",
		TrendTemplate: "Utveckling skattesats i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeSocialbidrag: {
		Name:          "Ekonomiskt bistånd",
		KPIID:         "N31816",
		Format:        FormatPercent,
		StatTemplate:  "{value}% av {municipality}s invånare erhöll ekonomiskt bistånd ({year})",
		TrendTemplate: "Utveckling ekonomiskt bistånd i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeBostadsbyggande: {
		Name:          "Färdigställda bostäder",
		KPIID:         "N07906",
		Format:        FormatNumber,
		StatTemplate:  "Under {year} färdigställdes {value} nya bostäder i {municipality}",
		TrendTemplate: "Utveckling bostadsbyggande i {municipality}: {previous_value} bostäder ({previous_year}) → {current_value} bostäder ({current_year})",
	},
	TypeSkolresultat: {
		Name:          "Skolresultat åk 9",
		KPIID:         "N15419",
		Format:        FormatPercent,
		StatTemplate:  "{value}% av eleverna i årskurs 9 i {municipality} uppnådde kunskapskraven i alla ämnen ({year})",
		TrendTemplate: "Utveckling skolresultat i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeAldreomsorg: {
		Name:          "Brukarbedömning äldreomsorg",
		KPIID:         "U23471",
		Format:        FormatPercent,
		StatTemplate:  "{value}% av brukarna i {municipality} är nöjda med sitt särskilda boende ({year})",
		TrendTemplate: "Utveckling nöjdhet äldreboende i {municipality}: {previous_value}% ({previous_year}) → {current_value}% ({current_year})",
	},
	TypeKultur: {
		Name:          "Kulturverksamhet",
		KPIID:         "N09100",
		Format:        FormatNumber,
		StatTemplate:  "{municipality} spenderar {value} kr per invånare på kulturverksamhet ({year})",
		TrendTemplate: "Utveckling kulturkostnad i {municipality}: {previous_value} kr/inv ({previous_year}) → {current_value} kr/inv ({current_year})",
	},
	TypeBraStatistik: {
		Name:          "Brottsstatistik",
		KPIID:         "BRA_TOTAL",
		Format:        FormatNumber,
		StatTemplate:  "Under {year} anmäldes {value} brott i Sverige, vilket motsvarar {crimes_per_100k} brott per 100 000 invånare",
		TrendTemplate: "Utveckling av anmälda brott: {previous_value} ({previous_year}) → {current_value} ({current_year}), en förändring med {change}%",
	},
}

// Registry resolves statistic types to their KPI configuration. The built-in
// mapping can be partially overridden from a YAML file; rules are static
// after construction.
type Registry struct {
	configs map[Type]KPIConfig
}

// NewRegistry creates a registry with the built-in mapping.
func NewRegistry() *Registry {
	configs := make(map[Type]KPIConfig, len(defaultConfigs))
	for t, cfg := range defaultConfigs {
		configs[t] = cfg
	}
	return &Registry{configs: configs}
}

// LoadOverrides merges a YAML mapping of type → KPIConfig over the built-in
// defaults. Empty fields in an override keep the default.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading KPI overrides: %w", err)
	}

	var overrides map[Type]KPIConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing KPI overrides: %w", err)
	}

	for t, override := range overrides {
		cfg, ok := r.configs[t]
		if !ok {
			cfg = KPIConfig{}
		}
		if override.Name != "" {
			cfg.Name = override.Name
		}
		if override.KPIID != "" {
			cfg.KPIID = override.KPIID
		}
		if override.Format != "" {
			cfg.Format = override.Format
		}
		if override.StatTemplate != "" {
			cfg.StatTemplate = override.StatTemplate
		}
		if override.TrendTemplate != "" {
			cfg.TrendTemplate = override.TrendTemplate
		}
		r.configs[t] = cfg
	}
	return nil
}

// Config returns the configuration for a statistic type.
func (r *Registry) Config(t Type) (KPIConfig, bool) {
	cfg, ok := r.configs[t]
	return cfg, ok
}

// Types lists the registered statistic types, sorted.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.configs))
	for t := range r.configs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
