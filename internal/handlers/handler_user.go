package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxAvatarSize caps avatar uploads at 5MB.
const maxAvatarSize = 5 << 20

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UserHandler handles the authenticated user's own profile.
type UserHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	uploadsDir   string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
		uploadsDir:   cfg.UploadsDir,
	}
}

// registerUserRoutes sets up the authenticated profile routes under /api/auth.
func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, cfg *config.Config) {
	h := NewUserHandler(services.User, services.Token, cfg)

	rg.GET("/me", h.Me)
	rg.PUT("/profile", h.UpdateProfile)
	rg.DELETE("/me", h.DeleteMe)
}

// Me godoc
// @Summary Get the current user
// @Tags user
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Accepts multipart form data so an avatar image can ride along. Returns the updated user with a fresh session token.
// @Tags user
// @Accept mpfd
// @Produce json
// @Param name formData string false "Display name"
// @Param email formData string false "Email"
// @Param password formData string false "New password"
// @Param avatar formData file false "Avatar image (jpeg/png/webp, max 5MB)"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedAvatarExts[ext] {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar must be a jpeg, png or webp image"})
			return
		}
		if file.Size > maxAvatarSize {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar must be smaller than 5MB"})
			return
		}
		// Client filename is untrusted; store under a fresh name.
		filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadsDir, filename)); err != nil {
			respondError(c, err)
			return
		}
		avatarURL = "/uploads/" + filename
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req, avatarURL)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, token))
}

// DeleteMe godoc
// @Summary Delete the current user's account
// @Description Removes the account and everything it owns.
// @Tags user
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted"})
}
