package domain

import "time"

// AuthProvider identifies the external identity provider that vouched for a user.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
	ProviderPhone  AuthProvider = "phone"
)

// User is the identity anchor of the application. At least one of Email or Phone is
// always present; each is globally unique when set (enforced by partial unique
// indexes in the store). PasswordHash only exists for accounts created through the
// legacy password path.
type User struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PasswordHash *string `json:"-"`
	Avatar       string  `json:"avatar,omitempty"`
	GoogleID     *string `json:"-"`

	// Transient OTP state. Digest-only: the plaintext code is never stored.
	// Cleared on single successful use or overwritten on re-issue.
	LoginOTPHash      *string    `json:"-"`
	LoginOTPExpiresAt *time.Time `json:"-"`
	ResetOTPHash      *string    `json:"-"`
	ResetOTPExpiresAt *time.Time `json:"-"`

	AuditFields
}

// EmailOrEmpty returns the user's email or "" when unset.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// PhoneOrEmpty returns the user's phone number or "" when unset.
func (u *User) PhoneOrEmpty() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
