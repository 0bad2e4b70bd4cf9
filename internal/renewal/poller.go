// Package renewal watches the user's subscription and raises a local
// renewal reminder when expiry is close. The poller is deliberately
// forgiving: a failed storage read or backend call is logged and the
// cycle skipped, never retried early and never fatal.
package renewal

import (
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"
)

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

const (
	defaultInterval   = 24 * time.Hour
	suppressionWindow = 24 * time.Hour

	// Reminders start this many days before expiry.
	notifyWithinDays = 10
)

// Poller periodically checks subscription expiry and notifies
// observers when a renewal reminder should be shown. It has two
// states: inactive (initial) and active (between Start and Stop).
type Poller struct {
	store    SettingsStore
	client   SubscriptionClient
	clock    TimeSource
	interval time.Duration

	mu        sync.Mutex
	active    bool
	stop      chan struct{}
	observers []func(Notification)
}

// NewPoller creates a poller with the default 24-hour interval and
// wall-clock time.
func NewPoller(store SettingsStore, client SubscriptionClient) *Poller {
	return NewPollerWithDeps(store, client, defaultTimeSource{}, defaultInterval)
}

// NewPollerWithInterval creates a poller with wall-clock time and a
// custom interval.
func NewPollerWithInterval(store SettingsStore, client SubscriptionClient, interval time.Duration) *Poller {
	return NewPollerWithDeps(store, client, defaultTimeSource{}, interval)
}

// NewPollerWithDeps creates a poller with injected clock and interval
// for testing.
func NewPollerWithDeps(store SettingsStore, client SubscriptionClient, clock TimeSource, interval time.Duration) *Poller {
	return &Poller{
		store:    store,
		client:   client,
		clock:    clock,
		interval: interval,
	}
}

// Subscribe registers an observer for renewal notifications.
// Observers are called from the poller's goroutine, after the
// notification has been persisted.
func (p *Poller) Subscribe(fn func(Notification)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Active reports whether the poller is running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Start transitions the poller to active, runs one immediate check and
// then checks on every interval tick. Starting an active poller is a
// logged no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		slog.Info("Renewal poller already active")
		return
	}
	p.active = true
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	slog.Info("Starting renewal poller", "interval", p.interval)
	go p.run(stop)
}

// Stop cancels future ticks and returns the poller to inactive. An
// in-flight check is not aborted.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	close(p.stop)
	p.active = false
	slog.Info("Renewal poller stopped")
}

func (p *Poller) run(stop chan struct{}) {
	p.Check()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Check()
		}
	}
}

// Check runs one poll cycle: read the auth token, fetch the
// subscription, decide, and on a positive decision persist the
// notification and invoke observers.
func (p *Poller) Check() {
	token, err := p.store.GetSetting(KeyAccessToken)
	if err != nil {
		slog.Error("Reading access token", "error", err)
		return
	}
	if token == "" {
		// Not signed in; nothing to check.
		return
	}

	sub, err := p.client.CurrentSubscription(token)
	if err != nil {
		slog.Error("Fetching subscription", "error", err)
		return
	}

	end, err := sub.ExpiresAt()
	if err != nil {
		slog.Error("Parsing subscription end date", "error", err)
		return
	}

	now := p.clock.Now()
	days := daysUntil(end, now)
	if !p.shouldShow(sub.Status, days, now) {
		return
	}

	n := Notification{
		DaysUntilExpiry: days,
		Urgency:         UrgencyFor(days),
		Subscription:    *sub,
		ShownAt:         now,
	}

	payload, err := json.Marshal(n)
	if err != nil {
		slog.Error("Marshaling notification", "error", err)
		return
	}
	if err := p.store.PutSetting(KeyPendingNotification, string(payload)); err != nil {
		slog.Error("Persisting notification", "error", err)
		return
	}
	if err := p.store.PutSetting(KeyLastShown, now.Format(time.RFC3339)); err != nil {
		slog.Error("Recording notification timestamp", "error", err)
	}

	slog.Info("Renewal reminder raised", "days_until_expiry", days, "urgency", n.Urgency)
	for _, fn := range p.snapshotObservers() {
		fn(n)
	}
}

func (p *Poller) snapshotObservers() []func(Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	obs := make([]func(Notification), len(p.observers))
	copy(obs, p.observers)
	return obs
}

// shouldShow applies the notification policy: active subscription,
// expiry within the reminder horizon but not already past, and nothing
// shown inside the suppression window.
func (p *Poller) shouldShow(status string, daysUntilExpiry int, now time.Time) bool {
	if status != "active" {
		return false
	}
	if daysUntilExpiry <= 0 || daysUntilExpiry > notifyWithinDays {
		return false
	}

	lastShownStr, err := p.store.GetSetting(KeyLastShown)
	if err != nil {
		slog.Error("Reading last-shown timestamp", "error", err)
		return false
	}
	if lastShownStr != "" {
		lastShown, err := time.Parse(time.RFC3339, lastShownStr)
		if err == nil && now.Sub(lastShown) < suppressionWindow {
			return false
		}
	}
	return true
}

// daysUntil is the number of days from now to end, rounded up so a
// subscription expiring later today still counts as one day away.
func daysUntil(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}
