package dto

// SubscriptionKeys are the client-side encryption keys of a push subscription.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// SubscribeRequest registers a browser push endpoint.
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}

// UnsubscribeRequest removes a push endpoint registration.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// VapidKeyResponse exposes the server's VAPID public key.
type VapidKeyResponse struct {
	PublicKey string `json:"publicKey"`
}
