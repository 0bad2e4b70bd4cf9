// Package invoice turns raw OCR or speech-transcript text into a
// structured invoice draft. Extraction is best-effort by contract:
// scanned text is inherently noisy, so every step degrades to an empty
// or zero value instead of failing, and Extract never returns an
// error. The caller owns the draft after extraction; nothing here
// mutates or persists it.
package invoice

// Extract runs the full pipeline: normalization, field rules, item
// table recovery and totals. It is pure and safe to call with any
// string, including empty input.
func Extract(raw string) Draft {
	text := Normalize(raw)

	t := extractTotals(text)
	return Draft{
		InvoiceNumber:   extractInvoiceNumber(text),
		InvoiceDate:     extractDate(text),
		CustomerName:    extractCustomerName(text),
		CustomerPhone:   extractPhone(text),
		CustomerAddress: extractAddress(text),
		Notes:           extractNotes(text),
		Items:           extractItems(text),
		Subtotal:        t.subtotal,
		TotalGST:        t.totalGST,
		Total:           t.total,
	}
}
