package renewal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SubscriptionClient fetches the current subscription from the books
// backend.
type SubscriptionClient interface {
	CurrentSubscription(token string) (*Subscription, error)
}

// HTTPClient talks to the backend's subscription endpoint with bearer
// authentication.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the given backend base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// subscriptionResponse is the backend's response envelope.
type subscriptionResponse struct {
	Success bool          `json:"success"`
	Data    *Subscription `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
}

// CurrentSubscription fetches the signed-in user's subscription.
func (c *HTTPClient) CurrentSubscription(token string) (*Subscription, error) {
	url := fmt.Sprintf("%s/api/subscriptions/current", c.baseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling subscription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subscription API error (status %d)", resp.StatusCode)
	}

	var envelope subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !envelope.Success || envelope.Data == nil {
		msg := envelope.Message
		if msg == "" {
			msg = "no subscription data"
		}
		return nil, fmt.Errorf("subscription API: %s", msg)
	}

	return envelope.Data, nil
}
