package renewal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Settings keys the poller shares with the rest of the app through the
// local store.
const (
	KeyAccessToken         = "accessToken"
	KeyLastShown           = "subscriptionNotificationLastShown"
	KeyPendingNotification = "pendingRenewalNotification"
)

// SettingsStore is the poller's view of local key-value storage. A
// missing key reads as the empty string, not an error.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	PutSetting(key, value string) error
	DeleteSetting(key string) error
}

// Urgency buckets a renewal notification for presentation.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// UrgencyFor maps days-until-expiry to an urgency tier.
func UrgencyFor(daysUntilExpiry int) Urgency {
	switch {
	case daysUntilExpiry <= 3:
		return UrgencyCritical
	case daysUntilExpiry <= 7:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// Notification is the renewal-reminder payload persisted for the UI
// and handed to observers.
type Notification struct {
	DaysUntilExpiry int          `json:"daysUntilExpiry"`
	Urgency         Urgency      `json:"urgency"`
	Subscription    Subscription `json:"subscription"`
	ShownAt         time.Time    `json:"shownAt"`
}

// PendingNotification loads the persisted notification, or nil when
// none is pending.
func PendingNotification(store SettingsStore) (*Notification, error) {
	raw, err := store.GetSetting(KeyPendingNotification)
	if err != nil {
		return nil, fmt.Errorf("reading pending notification: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var n Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, fmt.Errorf("unmarshaling pending notification: %w", err)
	}
	return &n, nil
}

// ClearPending removes the persisted notification. The last-shown
// timestamp is left alone so the suppression window keeps working.
func ClearPending(store SettingsStore) error {
	if err := store.DeleteSetting(KeyPendingNotification); err != nil {
		return fmt.Errorf("clearing pending notification: %w", err)
	}
	return nil
}
