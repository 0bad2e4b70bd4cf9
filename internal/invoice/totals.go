package invoice

import (
	"regexp"
	"strconv"
	"strings"
)

// Financial totals are extracted independently, never derived from the
// item rows. A mismatch between the two is reported as-is; the editing
// form is the place where the user reconciles them.
var (
	subtotalPattern = regexp.MustCompile(`(?i)\bsub\s*total\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	totalGSTPattern = regexp.MustCompile(`(?i)\btotal\s+GST\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	bareGSTPattern  = regexp.MustCompile(`(?i)\bGST\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	totalPattern    = regexp.MustCompile(`(?i)\btotal\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?)`)

	subPrefix = regexp.MustCompile(`(?i)sub\s*$`)
)

type totals struct {
	subtotal float64
	totalGST float64
	total    float64
}

func extractTotals(text string) totals {
	return totals{
		subtotal: matchSubtotal(text),
		totalGST: matchTotalGST(text),
		total:    matchTotal(text),
	}
}

func matchSubtotal(text string) float64 {
	if m := subtotalPattern.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return 0
}

// matchTotalGST prefers the explicit "Total GST" label. The bare "GST"
// label is ambiguous with per-row rates ("GST 5%"), so a hit whose
// number is immediately followed by a percent sign is skipped.
func matchTotalGST(text string) float64 {
	if m := totalGSTPattern.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	for _, loc := range bareGSTPattern.FindAllStringSubmatchIndex(text, -1) {
		end := loc[3]
		if end < len(text) && text[end] == '%' {
			continue
		}
		return parseAmount(text[loc[2]:loc[3]])
	}
	return 0
}

// matchTotal skips hits that are really the tail of "Sub Total". The
// fused "Subtotal" spelling never matches because there is no word
// boundary inside it.
func matchTotal(text string) float64 {
	for _, loc := range totalPattern.FindAllStringSubmatchIndex(text, -1) {
		if subPrefix.MatchString(text[:loc[0]]) {
			continue
		}
		return parseAmount(text[loc[2]:loc[3]])
	}
	return 0
}

// parseAmount converts a matched digit group like "1,234.56" or
// "$105.00" to a float. Anything unparseable is 0 rather than an
// error; partial extraction always wins over rejection here.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
