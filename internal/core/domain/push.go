package domain

import "time"

// PushSubscription is one browser push endpoint registered by a user. Endpoints
// are globally unique; re-subscribing an existing endpoint reassigns it.
type PushSubscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	UserID         string    `json:"userID"`
	Endpoint       string    `json:"endpoint"`
	P256dh         string    `json:"p256dh"`
	Auth           string    `json:"auth"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PushPayload is the notification body serialized into a Web Push message.
type PushPayload struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Icon  string         `json:"icon,omitempty"`
	Badge string         `json:"badge,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}
