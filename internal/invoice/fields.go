package invoice

import (
	"regexp"
	"strings"
	"time"
)

// Invoice number rules. The INV shorthand is rewritten to the SELL
// voucher series used by the books backend.
var invoiceNumberRules = []rule{
	{
		name: "inv-shorthand",
		re:   regexp.MustCompile(`(?i)\bINV[-\s]?(\d{3,6})\b`),
		transform: func(m []string) string {
			return "SELL-" + m[1]
		},
	},
	{
		name: "labeled-invoice-or-bill",
		re:   regexp.MustCompile(`(?i)\b(?:invoice|bill)\s+(?:number|no)\s*:?\s*([A-Za-z0-9][A-Za-z0-9\-_]{1,18})\b`),
	},
	{
		name: "labeled-receipt",
		re:   regexp.MustCompile(`(?i)\breceipt\s*(?:number|no)?\s*:?\s*([A-Za-z0-9][A-Za-z0-9\-_]{1,18})\b`),
	},
}

// Tokens that can never be an invoice number, regardless of shape.
var numberStopwords = map[string]bool{
	"INVOICE": true, "BILL": true, "RECEIPT": true, "NUMBER": true,
	"TOTAL": true, "SUBTOTAL": true, "GST": true, "DATE": true,
	"CUSTOMER": true, "PHONE": true, "ADDRESS": true, "NOTES": true,
	"DESCRIPTION": true, "AMOUNT": true, "QTY": true, "RATE": true,
	"SELL": true,
}

var (
	candidateToken = regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9\-_]{2,}\b`)
	dateLikeToken  = regexp.MustCompile(`^(?:\d{4}-\d{1,2}-\d{1,2}|\d{1,2}-\d{1,2}-\d{2,4})$`)
	phoneLikeToken = regexp.MustCompile(`^\d{10,12}$`)
	yearToken      = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	hasLetter      = regexp.MustCompile(`[A-Za-z]`)
	hasDigit       = regexp.MustCompile(`\d`)
	startsLetter   = regexp.MustCompile(`^[A-Za-z]`)
)

// extractInvoiceNumber tries the structured rules first and falls back
// to scanning every plausible token, scoring each, and keeping the
// highest score. Equal scores keep the earlier token.
func extractInvoiceNumber(text string) string {
	if v, ok := firstMatch(text, invoiceNumberRules); ok {
		return cleanInvoiceNumber(v)
	}

	best := ""
	bestScore := 0
	for _, tok := range candidateToken.FindAllString(text, -1) {
		if len(tok) > 20 {
			continue
		}
		if numberStopwords[strings.ToUpper(tok)] {
			continue
		}
		if dateLikeToken.MatchString(tok) || phoneLikeToken.MatchString(tok) || yearToken.MatchString(tok) {
			continue
		}
		score := scoreNumberCandidate(tok)
		if best == "" || score > bestScore {
			best = tok
			bestScore = score
		}
	}
	return cleanInvoiceNumber(best)
}

func scoreNumberCandidate(tok string) int {
	score := 0
	if hasLetter.MatchString(tok) && hasDigit.MatchString(tok) {
		score += 10
	}
	if strings.ContainsAny(tok, "-_") {
		score += 5
	}
	if len(tok) >= 5 && len(tok) <= 15 {
		score += 3
	}
	if len(tok) > 20 {
		score -= 5
	}
	if startsLetter.MatchString(tok) {
		score += 2
	}
	return score
}

var invoiceNumberJunk = regexp.MustCompile(`[^A-Za-z0-9\-_]`)

func cleanInvoiceNumber(s string) string {
	return invoiceNumberJunk.ReplaceAllString(s, "")
}

// Date rules. Whatever style matches, the value is normalized to
// YYYY-MM-DD so downstream form state sees exactly one format.
var dateRules = []rule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)\binvoice\s+date\s*:?\s*(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}-\d{1,2}-\d{4})`),
	},
	{
		name: "bare-iso",
		re:   regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
	},
	{
		name: "bare-slash",
		re:   regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	},
	{
		name: "bare-dash",
		re:   regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`),
	},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
}

func extractDate(text string) string {
	v, ok := firstMatch(text, dateRules)
	if !ok {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d.Format("2006-01-02")
		}
	}
	// Unparseable but matched; keep what the document said.
	return v
}

// Customer name rules: label first, then two consecutive capitalized
// words anywhere in the text.
var customerNameRules = []rule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)\bcustomer\s*(?:name)?\s*:?\s*(.+?)(?:\s+(?:phone|address|gst|invoice|notes|date|description|subtotal|total)\b|$)`),
	},
	{
		name: "bare-two-words",
		re:   regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`),
	},
}

var (
	nameJunk      = regexp.MustCompile(`[^A-Za-z ]`)
	trailingPhone = regexp.MustCompile(`(?i)\s*phone$`)
)

func extractCustomerName(text string) string {
	v, ok := firstMatch(text, customerNameRules)
	if !ok {
		return ""
	}
	return cleanName(v)
}

// cleanName strips punctuation and the trailing "Phone" artifact the
// OCR layer glues onto names that sit next to a phone label.
func cleanName(s string) string {
	s = nameJunk.ReplaceAllString(s, " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return trailingPhone.ReplaceAllString(s, "")
}

var phoneRules = []rule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)\bphone\s*(?:number|no)?\s*:?\s*(\+?\d[\d \-]{8,12}\d)`),
	},
	{
		name: "bare-digits",
		re:   regexp.MustCompile(`\b(\d{10,12})\b`),
	},
}

var phoneJunk = regexp.MustCompile(`[^\d+]`)

func extractPhone(text string) string {
	v, ok := firstMatch(text, phoneRules)
	if !ok {
		return ""
	}
	return phoneJunk.ReplaceAllString(v, "")
}

// Address rules: a label that stops at the next section, or an
// unlabeled run anchored on a trailing country name.
var addressRules = []rule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)\baddress\s*:?\s*(.+?)(?:\s+(?:phone|gst|description)\b|$)`),
	},
	{
		name: "country-anchored",
		re:   regexp.MustCompile(`(?i)\b(\d[\w,.\- ]{5,80}?(?:switzerland|india|usa|uk|canada))\b`),
	},
}

var (
	addressJunk = regexp.MustCompile(`[^A-Za-z0-9,.\- ]`)
	commaSpace  = regexp.MustCompile(`\s*,\s*`)
	addressTail = regexp.MustCompile(`(?i)\s+lte\b.*$`)
)

func extractAddress(text string) string {
	v, ok := firstMatch(text, addressRules)
	if !ok {
		return ""
	}
	return cleanAddress(v)
}

func cleanAddress(s string) string {
	s = addressTail.ReplaceAllString(s, "")
	s = addressJunk.ReplaceAllString(s, " ")
	s = commaSpace.ReplaceAllString(s, ", ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,")
}

// Notes rules stop before the screen-capture junk ("Share", "Lens",
// "LTE", clock timestamps) that phone OCR appends after the last
// printed line.
var notesRules = []rule{
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)\bnotes?\s*:?\s*(.+?)(?:\s+(?:share|lens|lte)\b|\s+\d{1,2}:\d{2}\b|$)`),
	},
}

var notesTail = regexp.MustCompile(`(?i)(?:\s+share(?:\s+lens)?|\s+lens)$`)

func extractNotes(text string) string {
	v, ok := firstMatch(text, notesRules)
	if !ok {
		return ""
	}
	s := notesTail.ReplaceAllString(v, "")
	s = addressJunk.ReplaceAllString(s, " ")
	s = commaSpace.ReplaceAllString(s, ", ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,")
}
