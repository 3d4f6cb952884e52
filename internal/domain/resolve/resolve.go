// Package resolve extracts typed semantic fields from loosely-typed result
// rows. The upstream views are not schema-enforced, so every accessor tries a
// prioritized list of candidate column names and falls back to parsing the
// free-text division label when structured columns are absent.
package resolve

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
)

// Candidate column names per semantic field, in priority order. Upstream
// sources disagree on naming; first usable wins.
var (
	teamKeyKeys     = []string{"team_id", "team_uid", "team_key"}
	programIDKeys   = []string{"program_id", "gym_id"}
	programNameKeys = []string{"program_name", "program", "gym_name", "gym"}
	teamNameKeys    = []string{"team_name", "team", "squad_name"}
	divisionKeys    = []string{"division", "division_name", "division_text", "division_label"}
	levelKeys       = []string{"level", "div_level"}
	ageKeys         = []string{"age_bracket", "age_group", "age_division"}
	sizeKeys        = []string{"size_category", "team_size", "size"}
	eventKeyKeys    = []string{"event_id", "competition_id", "event_key"}
	sourceURLKeys   = []string{"source_url", "result_url", "url"}
	eventNameKeys   = []string{"event_name", "competition_name", "event", "competition"}
	weekendKeys     = []string{"weekend_date", "event_date", "date"}
	scoreKeys       = []string{"event_score", "score", "raw_score", "total_score"}
	flexKeys        = []string{"is_flex", "flex"}
	d2Keys          = []string{"is_d2", "d2"}
)

// Lookup returns the first usable value among the candidate keys, else
// fallback. A value is usable when the key is present, non-nil, and its
// string form is non-empty after trimming. Every accessor in this package
// shares this rule; do not reimplement it per field.
func Lookup(rec model.ResultRecord, keys []string, fallback string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			return s
		}
	}
	return fallback
}

// Number returns the first candidate value that coerces to a finite float64.
// Non-finite and unconvertible values count as absent, never as zero.
func Number(rec model.ResultRecord, keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Flag returns the first candidate value interpretable as a boolean.
func Flag(rec model.ResultRecord, keys []string) (bool, bool) {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "t", "yes", "y", "1":
				return true, true
			case "false", "f", "no", "n", "0":
				return false, true
			}
		case float64:
			return t != 0, true
		case int:
			return t != 0, true
		}
	}
	return false, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// levelPattern matches a leading level token: "L" plus a single digit 1-7,
// optional internal whitespace, case-insensitive.
var levelPattern = regexp.MustCompile(`(?i)^\s*l\s*([1-7])\b`)

// ageVocabulary is ordered; first containment match wins. Real labels do not
// overlap across brackets.
var ageVocabulary = []string{"tiny", "mini", "youth", "junior", "senior", "u16", "u18", "open"}

// sizeExact maps the normalized division token to the canonical size label.
var sizeExact = map[string]string{
	"x small": "X-Small",
	"small":   "Small",
	"medium":  "Medium",
	"large":   "Large",
	"x large": "X-Large",
}

// sizeSearchOrder lists normalized size tokens for the substring fallback.
// Longer tokens come first so "x small" is never shadowed by "small".
var sizeSearchOrder = []string{"x small", "x large", "small", "medium", "large"}

// normalize lowercases, converts hyphens to spaces, and collapses runs of
// whitespace to a single space.
func normalize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "-", " "))
	return strings.Join(strings.Fields(s), " ")
}

// ParseLevel extracts a leading "L<digit>" level token from a free-text
// division label. Returns "" when no level is present.
func ParseLevel(division string) string {
	m := levelPattern.FindStringSubmatch(division)
	if m == nil {
		return ""
	}
	return "L" + m[1]
}

// ParseAgeBracket finds the first age-vocabulary entry contained in the
// normalized division label. The canonical form is title-cased except the
// U16/U18 brackets.
func ParseAgeBracket(division string) string {
	norm := normalize(division)
	for _, age := range ageVocabulary {
		if strings.Contains(norm, age) {
			switch age {
			case "u16":
				return "U16"
			case "u18":
				return "U18"
			default:
				return strings.ToUpper(age[:1]) + age[1:]
			}
		}
	}
	return ""
}

// HasWord reports whether the division label contains token as a separate
// word (split on any non-alphanumeric rune, case-insensitive).
func HasWord(division, token string) bool {
	words := strings.FieldsFunc(strings.ToLower(division), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}

// ParseSize extracts a canonical size category from a free-text division
// label: exact match on the normalized label first, then a substring search
// for sizes embedded mid-string. Returns "" when no size is present.
func ParseSize(division string) string {
	norm := normalize(division)
	if size, ok := sizeExact[norm]; ok {
		return size
	}
	for _, token := range sizeSearchOrder {
		if strings.Contains(norm, token) {
			return sizeExact[token]
		}
	}
	return ""
}

// canonicalSize maps a structured size column value onto the canonical
// labels, tolerating hyphen/case variants. Unknown values resolve to "".
func canonicalSize(raw string) string {
	if size, ok := sizeExact[normalize(raw)]; ok {
		return size
	}
	return ""
}

// Record resolves one raw row into typed fields. Structured columns win;
// the free-text division label fills whatever they leave blank.
func Record(rec model.ResultRecord) model.Fields {
	f := model.Fields{
		ProgramName: Lookup(rec, programNameKeys, ""),
		TeamName:    Lookup(rec, teamNameKeys, ""),
		Division:    Lookup(rec, divisionKeys, ""),
		EventKey:    Lookup(rec, eventKeyKeys, ""),
		SourceURL:   Lookup(rec, sourceURLKeys, ""),
		EventName:   Lookup(rec, eventNameKeys, ""),
		WeekendDate: Lookup(rec, weekendKeys, ""),
	}

	if score, ok := Number(rec, scoreKeys); ok {
		f.Score = score
		f.HasScore = true
	}

	f.Level = Lookup(rec, levelKeys, "")
	if f.Level == "" {
		f.Level = ParseLevel(f.Division)
	} else if parsed := ParseLevel(f.Level); parsed != "" {
		f.Level = parsed
	}

	f.AgeBracket = Lookup(rec, ageKeys, "")
	if f.AgeBracket == "" {
		f.AgeBracket = ParseAgeBracket(f.Division)
	}

	if flex, ok := Flag(rec, flexKeys); ok {
		f.Flex = flex
	} else {
		f.Flex = HasWord(f.Division, "flex")
	}
	if d2, ok := Flag(rec, d2Keys); ok {
		f.D2 = d2
	} else {
		f.D2 = HasWord(f.Division, "d2")
	}

	if raw := Lookup(rec, sizeKeys, ""); raw != "" {
		f.Size = canonicalSize(raw)
	}
	if f.Size == "" {
		f.Size = ParseSize(f.Division)
	}

	f.TeamKey = teamIdentity(rec, f)
	return f
}

// Records resolves a batch of raw rows.
func Records(recs []model.ResultRecord) []model.Fields {
	out := make([]model.Fields, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Record(rec))
	}
	return out
}

// teamIdentity returns the stable team key: an explicit id column when
// present, else (program id or normalized program name) + normalized team
// name. Empty when no usable identity exists; such records are dropped by
// the aggregator.
func teamIdentity(rec model.ResultRecord, f model.Fields) string {
	if key := Lookup(rec, teamKeyKeys, ""); key != "" {
		return key
	}
	program := Lookup(rec, programIDKeys, "")
	if program == "" {
		program = normalize(f.ProgramName)
	}
	team := normalize(f.TeamName)
	if program == "" || team == "" {
		return ""
	}
	return program + "|" + team
}
