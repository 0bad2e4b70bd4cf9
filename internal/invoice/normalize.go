package invoice

import (
	"regexp"
	"strings"
)

// Scanned text arrives with control characters, broken line wraps and
// OCR noise glyphs. Normalize flattens it to a single line containing
// only word characters, commas, periods, dashes, colons, percent signs
// and the dollar sign, with single spaces between tokens. The pass runs
// twice so that cascades of noise characters fully collapse.
var (
	noiseGlyphs = regexp.MustCompile(`[^\w,.\-:%$]`)
	spaceRuns   = regexp.MustCompile(`\s{2,}`)
)

// Normalize prepares raw scanned or transcribed text for pattern
// matching. It is pure and idempotent; empty input yields "".
func Normalize(raw string) string {
	s := raw
	for i := 0; i < 2; i++ {
		s = noiseGlyphs.ReplaceAllString(s, " ")
		s = spaceRuns.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(s)
}
