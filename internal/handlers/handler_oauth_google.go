package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles the server-side Google OAuth redirect flow, as an
// alternative to the client posting an ID token directly.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	tokenService       portssvc.TokenSvcFacade
	frontendBaseURL    string
	secureCookies      bool
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		tokenService:       tokenService,
		frontendBaseURL:    cfg.FrontendBaseURL,
		secureCookies:      cfg.IsProduction,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth redirect routes.
func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, cfg *config.Config) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.Auth, services.Token, cfg)
	google := r.Group("/api/auth/google")
	{
		google.GET("/redirect", h.RedirectToGoogle)
		google.GET("/callback", h.CallbackGoogle)
	}
}

// RedirectToGoogle godoc
// @Summary Start the Google OAuth redirect flow
// @Description Sets a CSRF state cookie and redirects the browser to Google's consent screen.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/redirect [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// State round-trips through a short-lived cookie for CSRF protection.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, signs the user in and redirects back to the frontend with a session token.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	// Same upsert as the direct google-login endpoint.
	user, err := h.authService.GoogleLogin(ctx, idTokenString)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", h.frontendBaseURL, url.QueryEscape(token))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
