package renewal

import (
	"fmt"
	"time"
)

// Plan describes the billing plan attached to a subscription, as the
// books backend reports it.
type Plan struct {
	DisplayName  string  `json:"displayName"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billingCycle"`
}

// Subscription is the backend's view of the user's current
// subscription. EndDate is an ISO date string.
type Subscription struct {
	Status  string `json:"status"`
	EndDate string `json:"endDate"`
	Plan    Plan   `json:"plan"`
}

var endDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ExpiresAt parses the subscription end date.
func (s *Subscription) ExpiresAt() (time.Time, error) {
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, s.EndDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable subscription end date: %q", s.EndDate)
}
