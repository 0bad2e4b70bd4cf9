package invoice

// LineItem is a single recovered invoice row. Amount is taken from the
// matched text when present, never recomputed from quantity and rate;
// the editing form owns that arithmetic.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	GSTPct      float64 `json:"gst_pct"`
	Amount      float64 `json:"amount"`
}

// Draft is the structured result of extracting invoice fields from raw
// OCR or transcript text. Every string field defaults to "" and every
// numeric field to 0 when nothing was recognized; Items is never nil.
// Subtotal, TotalGST and Total are extracted independently and may
// disagree with the sum of Items.
type Draft struct {
	InvoiceNumber   string     `json:"invoice_number"`
	InvoiceDate     string     `json:"invoice_date"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerAddress string     `json:"customer_address"`
	Notes           string     `json:"notes"`
	Items           []LineItem `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	TotalGST        float64    `json:"total_gst"`
	Total           float64    `json:"total"`
}
