package dto

import "github.com/lifeos-app/lifeos-backend/internal/core/domain"

// SendLoginOTPRequest asks for a passwordless sign-in code.
type SendLoginOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyLoginOTPRequest exchanges a sign-in code for a session.
type VerifyLoginOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// SendRegisterOTPRequest starts a passwordless registration.
type SendRegisterOTPRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// VerifyRegisterOTPRequest completes a passwordless registration.
type VerifyRegisterOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// PhoneLoginRequest exchanges a provider-verified phone token for a session.
// Only the ID token matters; the verified phone number comes from the provider.
type PhoneLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// PhoneRegisterRequest creates an account bound to a provider-verified phone.
type PhoneRegisterRequest struct {
	IDToken string `json:"idToken" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// GoogleLoginRequest signs in with a Google ID token. Name and PhotoURL are
// accepted for API compatibility with the client but identity resolution uses
// the verified token claims exclusively.
type GoogleLoginRequest struct {
	IDToken  string `json:"idToken" binding:"required"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// ForgotPasswordRequest asks for a password-reset code.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset code and sets a new password.
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required,len=6,numeric"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest is the legacy password registration body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the legacy password login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by every successful authentication.
type AuthResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Token  string `json:"token"`
}

// NeedsRegistrationResponse is the phone-login branch signal: the verified
// identity has no account yet, so the client should continue to registration.
type NeedsRegistrationResponse struct {
	Message           string `json:"message"`
	NeedsRegistration bool   `json:"needsRegistration"`
	Phone             string `json:"phone,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResetPasswordResponse acknowledges a completed reset and signs the user in.
type ResetPasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ToAuthResponse builds the auth payload for a user and freshly minted token.
func ToAuthResponse(user *domain.User, token string) AuthResponse {
	return AuthResponse{
		ID:     user.UserID,
		Name:   user.Name,
		Email:  user.EmailOrEmpty(),
		Phone:  user.PhoneOrEmpty(),
		Avatar: user.Avatar,
		Token:  token,
	}
}
