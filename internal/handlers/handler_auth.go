package handlers

import (
	"net/http"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade, tokenService portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// registerAuthRoutes sets up the public authentication routes. The code-issuing
// endpoints sit behind the send limiter; the code-consuming endpoints sit
// behind the verify limiter so codes cannot be brute-forced within their
// validity window.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, otpSendLimiter *limiter.Limiter, otpVerifyLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.Auth, services.Token)
	sendLimited := middleware.RateLimit(otpSendLimiter)
	verifyLimited := middleware.RateLimit(otpVerifyLimiter)

	auth := r.Group("/api/auth")
	{
		auth.POST("/send-login-otp", sendLimited, h.SendLoginOTP)
		auth.POST("/verify-login-otp", verifyLimited, h.VerifyLoginOTP)
		auth.POST("/send-register-otp", sendLimited, h.SendRegisterOTP)
		auth.POST("/verify-register-otp", verifyLimited, h.VerifyRegisterOTP)
		auth.POST("/forgot-password", sendLimited, h.ForgotPassword)
		auth.POST("/reset-password", verifyLimited, h.ResetPassword)
		auth.POST("/phone-login", h.PhoneLogin)
		auth.POST("/phone-register", h.PhoneRegister)
		auth.POST("/google-login", h.GoogleLogin)
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// respondWithSession mints a session token for the resolved user and writes
// the auth payload, or maps the resolution error.
func (h *AuthHandler) respondWithSession(c *gin.Context, status int, user *domain.User, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, dto.ToAuthResponse(user, token))
}

// SendLoginOTP godoc
// @Summary Request a sign-in code
// @Description Emails a one-time sign-in code to an existing account.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SendLoginOTPRequest true "Target email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/send-login-otp [post]
func (h *AuthHandler) SendLoginOTP(c *gin.Context) {
	var req dto.SendLoginOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.authService.SendLoginOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP sent to your email"})
}

// VerifyLoginOTP godoc
// @Summary Sign in with a code
// @Description Consumes a sign-in code and returns the user with a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyLoginOTPRequest true "Email and code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify-login-otp [post]
func (h *AuthHandler) VerifyLoginOTP(c *gin.Context) {
	var req dto.VerifyLoginOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.VerifyLoginOTP(c.Request.Context(), req.Email, req.OTP)
	h.respondWithSession(c, http.StatusOK, user, err)
}

// SendRegisterOTP godoc
// @Summary Start a registration
// @Description Records a pending registration and emails its verification code.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SendRegisterOTPRequest true "Name and email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/send-register-otp [post]
func (h *AuthHandler) SendRegisterOTP(c *gin.Context) {
	var req dto.SendRegisterOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.authService.SendRegisterOTP(c.Request.Context(), req.Name, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification code sent to your email"})
}

// VerifyRegisterOTP godoc
// @Summary Complete a registration
// @Description Consumes a registration code, creates the account and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyRegisterOTPRequest true "Email and code"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify-register-otp [post]
func (h *AuthHandler) VerifyRegisterOTP(c *gin.Context) {
	var req dto.VerifyRegisterOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.VerifyRegisterOTP(c.Request.Context(), req.Email, req.OTP)
	h.respondWithSession(c, http.StatusCreated, user, err)
}

// ForgotPassword godoc
// @Summary Request a password-reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Target email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.authService.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset code sent to your email"})
}

// ResetPassword godoc
// @Summary Reset a password with a code
// @Description Consumes a reset code, stores the new password and signs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} dto.ResetPasswordResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetPasswordResponse{Message: "Password reset successful", Token: token})
}

// PhoneLogin godoc
// @Summary Sign in with a verified phone token
// @Description Verifies a provider ID token and signs in the account bound to its phone number.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PhoneLoginRequest true "Provider ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} dto.NeedsRegistrationResponse "No account; registration required"
// @Router /auth/phone-login [post]
func (h *AuthHandler) PhoneLogin(c *gin.Context) {
	var req dto.PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.PhoneLogin(c.Request.Context(), req.IDToken)
	h.respondWithSession(c, http.StatusOK, user, err)
}

// PhoneRegister godoc
// @Summary Register with a verified phone token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PhoneRegisterRequest true "Provider ID token and display name"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/phone-register [post]
func (h *AuthHandler) PhoneRegister(c *gin.Context) {
	var req dto.PhoneRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.PhoneRegister(c.Request.Context(), req.IDToken, req.Name)
	h.respondWithSession(c, http.StatusCreated, user, err)
}

// GoogleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Verifies the token and finds or creates the account for its email claim.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	// req.Name and req.PhotoURL are deliberately ignored; identity comes from
	// the verified token only.
	user, err := h.authService.GoogleLogin(c.Request.Context(), req.IDToken)
	h.respondWithSession(c, http.StatusOK, user, err)
}

// Register godoc
// @Summary Register with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Name, email and password"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.RegisterWithPassword(c.Request.Context(), req.Name, req.Email, req.Password)
	h.respondWithSession(c, http.StatusCreated, user, err)
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	user, err := h.authService.LoginWithPassword(c.Request.Context(), req.Email, req.Password)
	h.respondWithSession(c, http.StatusOK, user, err)
}
