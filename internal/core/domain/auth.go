package domain

import "time"

// OTPPurpose selects which credential slot a one-time code is bound to.
type OTPPurpose string

const (
	// OTPPurposeLogin covers passwordless sign-in codes.
	OTPPurposeLogin OTPPurpose = "login"
	// OTPPurposeReset covers password-reset codes.
	OTPPurposeReset OTPPurpose = "reset"
)

// PendingRegistration holds an unconfirmed registration request before a durable
// User record exists. Keyed by lowercased email; a new request for the same email
// overwrites the previous one, so at most one pending registration per address.
type PendingRegistration struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	OTPHash   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// VerifiedIdentity is an identity claim extracted from a provider-issued token
// after server-side verification. Fields come exclusively from the verified token
// or the provider directory, never from client input.
type VerifiedIdentity struct {
	Provider AuthProvider
	Subject  string
	Email    string
	Phone    string
	Name     string
	PhotoURL string
}

// GoogleUserInfo mirrors the payload of Google's OAuth2 userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
