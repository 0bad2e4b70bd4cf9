package voucher

import (
	"time"

	"github.com/bizbook-labs/ledgerscan/internal/invoice"
)

// DraftRecord is a persisted invoice draft together with the source
// document it was extracted from. The draft itself is the immutable
// extraction result; edits happen in the client's form state and are
// submitted to the books backend as vouchers, not written back here.
type DraftRecord struct {
	ID          string        `json:"id"`
	Draft       invoice.Draft `json:"draft"`
	SourceText  string        `json:"source_text"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
