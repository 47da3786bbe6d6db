// Package statistics maps named statistic types to Kolada indicators and
// renders fetched values as Swedish presentation text.
package statistics

import (
	"sort"
	"strings"
)

// Type names a statistic that can be requested from Kolada or BRÅ.
type Type string

const (
	TypeBefolkning      Type = "befolkning"
	TypeInvandring      Type = "invandring"
	TypeArbetsmarknad   Type = "arbetsmarknad"
	TypeTrygghet        Type = "trygghet"
	TypeEkonomi         Type = "ekonomi"
	TypeSkattesats      Type = "skattesats"
	TypeSocialbidrag    Type = "socialbidrag"
	TypeBostadsbyggande Type = "bostadsbyggande"
	TypeSkolresultat    Type = "skolresultat"
	TypeAldreomsorg     Type = "aldreomsorg"
	TypeKultur          Type = "kultur"
	TypeBraStatistik    Type = "bra_statistik"
)

// Kolada municipality ids for Värmland, keyed by lowercase name.
var varmlandMunicipalities = map[string]string{
	"arvika":       "1784",
	"eda":          "1730",
	"filipstad":    "1782",
	"forshaga":     "1763",
	"grums":        "1764",
	"hagfors":      "1783",
	"hammarö":      "1761",
	"karlstad":     "1715",
	"kil":          "1715",
	"kristinehamn": "1781",
	"munkfors":     "1762",
	"storfors":     "1760",
	"sunne":        "1766",
	"säffle":       "1785",
	"torsby":       "1737",
	"årjäng":       "1765",
}

// MunicipalityID translates a municipality name (case-insensitive) to its
// Kolada id.
func MunicipalityID(name string) (string, bool) {
	id, ok := varmlandMunicipalities[strings.ToLower(name)]
	return id, ok
}

// Municipalities lists the known municipality names, sorted.
func Municipalities() []string {
	names := make([]string, 0, len(varmlandMunicipalities))
	for name := range varmlandMunicipalities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
