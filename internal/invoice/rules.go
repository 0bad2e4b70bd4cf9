package invoice

import (
	"regexp"
	"strings"
)

// rule is one named candidate pattern for a field. Rules for a field
// are kept in an ordered slice and evaluated top to bottom; the first
// rule that produces a non-empty value wins and later rules are never
// consulted. Naming each rule keeps the fallback order auditable and
// lets tests target a single tier.
type rule struct {
	name string
	re   *regexp.Regexp
	// transform builds the value from the submatch slice. When nil,
	// capture group 1 is used as-is.
	transform func(m []string) string
}

// firstMatch evaluates rules in priority order against text and
// returns the winning value, or ("", false) when no rule matched.
// Conflicting matches across rules are not reconciled.
func firstMatch(text string, rules []rule) (string, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var v string
		if r.transform != nil {
			v = r.transform(m)
		} else if len(m) > 1 {
			v = m[1]
		}
		v = strings.TrimSpace(v)
		if v != "" {
			return v, true
		}
	}
	return "", false
}
