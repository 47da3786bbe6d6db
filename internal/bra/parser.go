package bra

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	countSuffixRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:brott|fall)`)
	millionsRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*miljon(?:er)?`)
	anyNumberRe   = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)
	percentRe     = regexp.MustCompile(`(\d+(?:[.,]\d+)*)\s*%`)
	digitRunRe    = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// Words that signal a year-over-year decrease in BRÅ prose.
var decreaseWords = []string{
	"minska", "minskning", "minus", "ned", "ner", "färre", "lägre", "mindre",
}

// numberMatcher attempts one extraction rule against normalized text.
// ok is false when the rule does not apply.
type numberMatcher func(text string) (value int, ok bool)

// Rules are tried in priority order; the first match wins.
var numberMatchers = []numberMatcher{
	matchCountSuffix,
	matchMillions,
	matchBareNumber,
}

// ExtractNumber pulls a single magnitude out of a Swedish text fragment.
// It never fails; unparsable input yields 0.
//
// The text is normalized first (spaces used as thousands separators are
// stripped, decimal commas become decimal points), then each rule is tried
// in order: a number directly followed by "brott" or "fall", a number
// scaled by "miljon"/"miljoner", and finally the first bare number that
// does not look like a calendar year. Scientific notation is not expanded;
// only the digits before an exponent marker are read.
func ExtractNumber(text string) int {
	normalized := normalizeNumberText(text)
	for _, match := range numberMatchers {
		if v, ok := match(normalized); ok {
			return v
		}
	}
	return 0
}

// ExtractPercentage pulls a signed percentage change out of a Swedish text
// fragment. It never fails; the default is 0.0.
//
// The sign is determined by scanning the whole text for decrease vocabulary
// ("minskning", "färre", ...). The magnitude comes from a direct "<number>%"
// pattern when present, otherwise from a token scan that tolerates the
// malformed comma sequences BRÅ's verbose phrasing produces. In the token
// scan the last candidate wins, matching how the quantity trails the
// sentence in phrases like "en minskning med 5 procent".
func ExtractPercentage(text string) float64 {
	if text == "" {
		return 0.0
	}

	lower := strings.ToLower(text)
	negative := false
	for _, word := range decreaseWords {
		if strings.Contains(lower, word) {
			negative = true
			break
		}
	}

	magnitude, ok := matchDirectPercent(lower)
	if !ok {
		magnitude, ok = scanPercentTokens(lower)
	}
	if !ok {
		return 0.0
	}
	if negative {
		return -magnitude
	}
	return magnitude
}

func normalizeNumberText(text string) string {
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")
	return strings.ToLower(text)
}

func matchCountSuffix(text string) (int, bool) {
	m := countSuffixRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func matchMillions(text string) (int, bool) {
	m := millionsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(v * 1_000_000)), true
}

// matchBareNumber returns the first numeric substring that is not a 4-digit
// token beginning with "2", the heuristic for embedded calendar years.
func matchBareNumber(text string) (int, bool) {
	for _, tok := range anyNumberRe.FindAllString(text, -1) {
		if len(tok) == 4 && strings.HasPrefix(tok, "2") {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		return int(v), true
	}
	return 0, false
}

// matchDirectPercent handles the clean "<number>%" shorthand. When the
// captured number contains more than one dot-separated group, only the first
// two are combined into a decimal; the rest is discarded.
func matchDirectPercent(text string) (float64, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	parts := strings.Split(strings.ReplaceAll(m[1], ",", "."), ".")
	number := parts[0]
	if len(parts) > 1 {
		number = parts[0] + "." + parts[1]
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// scanPercentTokens is the word-scan fallback for verbose phrasing where the
// quantity is not glued to a percent sign. Tokens without digits, or with a
// doubled dot, are discarded as malformed. The last candidate found wins.
func scanPercentTokens(text string) (float64, bool) {
	var candidates []float64

	for _, token := range strings.Fields(text) {
		if !strings.ContainsAny(token, "0123456789") || strings.Contains(token, "..") {
			continue
		}

		if strings.Count(token, ",") > 1 {
			if v, ok := combineCommaParts(token); ok {
				candidates = append(candidates, v)
			}
			continue
		}

		for _, run := range digitRunRe.FindAllString(token, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", "."), 64)
			if err != nil {
				continue
			}
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[len(candidates)-1], true
}

// combineCommaParts resolves tokens like "2,5,6". All comma-delimited parts
// must be pure digit strings. Exactly three parts combine the 2nd and 3rd as
// an integer-and-decimal pair ("2,5,6" -> 5.6); otherwise the last part is
// taken as an integer.
func combineCommaParts(token string) (float64, bool) {
	parts := strings.Split(token, ",")
	for _, p := range parts {
		if p == "" || !isDigits(p) {
			return 0, false
		}
	}
	if len(parts) == 3 {
		v, err := strconv.ParseFloat(parts[1]+"."+parts[2], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
