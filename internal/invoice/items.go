package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Row shapes for the structured item table, tried in order:
// "Charger GST 5% 10 10 105.00", "Charger 5% 10 10 105.00",
// "Charger 10 10 105.00". Descriptions are single tokens; multi-word
// descriptions lose everything but their last word, which matches how
// the table survives OCR flattening.
var (
	itemWithGST = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z0-9\-]*)\s+GST\s+(\d{1,2})%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+([\d,]+(?:\.\d+)?)\b`)
	itemBarePct = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9\-]*)\s+(\d{1,2})%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+([\d,]+(?:\.\d+)?)\b`)
	itemNoPct   = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9\-]*)\s+(\d+)\s+(\d+(?:\.\d+)?)\s+([\d,]+\.\d{1,2})\b`)

	// Any <int> <int> <decimal> run, used only when no structured row
	// matched anywhere in the text.
	numericTriplet = regexp.MustCompile(`\b(\d+)\s+(\d+)\s+(\d+\.\d+)\b`)
)

// Words that appear in the description column position but are table
// furniture, not products.
var rowStopwords = map[string]bool{
	"DESCRIPTION": true, "TOTAL": true, "SUBTOTAL": true, "NOTES": true,
	"QTY": true, "QUANTITY": true, "RATE": true, "AMOUNT": true,
	"GST": true, "ITEM": true, "ITEMS": true, "INVOICE": true,
	"CUSTOMER": true, "PHONE": true, "ADDRESS": true, "DATE": true,
}

// defaultGSTPct is assumed for rows and triplets that carry no
// explicit percentage.
const defaultGSTPct = 18

const maxTripletItems = 5

// extractItems recovers line items from the normalized text. The
// structured table shapes run first; the generic triplet fallback only
// runs when they produced nothing at all.
func extractItems(text string) []LineItem {
	items := extractTableRows(text)
	if len(items) == 0 {
		items = extractTriplets(text)
	}
	return items
}

func extractTableRows(text string) []LineItem {
	items := make([]LineItem, 0)

	for _, m := range itemWithGST.FindAllStringSubmatch(text, -1) {
		if item, ok := rowFromMatch(m[1], m[2], m[3], m[4], m[5]); ok {
			items = append(items, item)
		}
	}
	for _, m := range itemBarePct.FindAllStringSubmatch(text, -1) {
		if item, ok := rowFromMatch(m[1], m[2], m[3], m[4], m[5]); ok {
			items = append(items, item)
		}
	}
	for _, m := range itemNoPct.FindAllStringSubmatch(text, -1) {
		if item, ok := rowFromMatch(m[1], "0", m[2], m[3], m[4]); ok {
			items = append(items, item)
		}
	}

	return items
}

// rowFromMatch validates the description column and builds a LineItem.
// Rows whose description is table furniture or too short to be a
// product name are dropped.
func rowFromMatch(desc, pct, qty, rate, amount string) (LineItem, bool) {
	desc = strings.TrimSpace(desc)
	if len(desc) <= 2 || rowStopwords[strings.ToUpper(desc)] {
		return LineItem{}, false
	}

	qtyN, _ := strconv.ParseFloat(qty, 64)
	pctN, _ := strconv.ParseFloat(pct, 64)
	return LineItem{
		Description: desc,
		Quantity:    qtyN,
		Rate:        parseAmount(rate),
		GSTPct:      pctN,
		Amount:      parseAmount(amount),
	}, true
}

// extractTriplets synthesizes placeholder items from bare numeric runs
// when the table shapes recognized nothing.
func extractTriplets(text string) []LineItem {
	items := make([]LineItem, 0)
	for i, m := range numericTriplet.FindAllStringSubmatch(text, maxTripletItems) {
		qty, _ := strconv.ParseFloat(m[1], 64)
		items = append(items, LineItem{
			Description: fmt.Sprintf("Item %d", i+1),
			Quantity:    qty,
			Rate:        parseAmount(m[2]),
			GSTPct:      defaultGSTPct,
			Amount:      parseAmount(m[3]),
		})
	}
	return items
}
