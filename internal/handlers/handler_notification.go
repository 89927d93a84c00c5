package handlers

import (
	"net/http"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles Web Push subscription management.
type NotificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService portssvc.NotificationSvcFacade) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes sets up the authenticated notification routes.
// The VAPID public key route is registered separately since browsers need it
// before any login.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := NewNotificationHandler(notificationService)
	notifications := rg.Group("/notifications")
	{
		notifications.POST("/subscribe", h.Subscribe)
		notifications.POST("/unsubscribe", h.Unsubscribe)
		notifications.POST("/test", h.SendTest)
	}
}

// registerPublicNotificationRoutes exposes the VAPID public key.
func registerPublicNotificationRoutes(r *gin.Engine, notificationService portssvc.NotificationSvcFacade) {
	h := NewNotificationHandler(notificationService)
	r.GET("/api/notifications/vapid-public-key", h.VapidPublicKey)
}

// VapidPublicKey godoc
// @Summary Get the server's VAPID public key
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.VapidKeyResponse
// @Router /notifications/vapid-public-key [get]
func (h *NotificationHandler) VapidPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, dto.VapidKeyResponse{PublicKey: h.notificationService.VAPIDPublicKey()})
}

// Subscribe godoc
// @Summary Register a push endpoint
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body dto.SubscribeRequest true "Push subscription"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/subscribe [post]
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.notificationService.Subscribe(c.Request.Context(), userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Subscribed"})
}

// Unsubscribe godoc
// @Summary Remove a push endpoint registration
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body dto.UnsubscribeRequest true "Endpoint to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/unsubscribe [post]
func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.notificationService.Unsubscribe(c.Request.Context(), userID, req.Endpoint); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Unsubscribed"})
}

// SendTest godoc
// @Summary Send a test notification to all of the user's subscriptions
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No subscriptions"
// @Security BearerAuth
// @Router /notifications/test [post]
func (h *NotificationHandler) SendTest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.notificationService.SendTest(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Test notification sent"})
}
