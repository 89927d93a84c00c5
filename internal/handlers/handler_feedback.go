package handlers

import (
	"net/http"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler relays user feedback to the configured mailbox.
type FeedbackHandler struct {
	emailSender portssvc.EmailSenderSvc
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(emailSender portssvc.EmailSenderSvc) *FeedbackHandler {
	return &FeedbackHandler{emailSender: emailSender}
}

// registerFeedbackRoutes sets up the feedback route.
func registerFeedbackRoutes(rg *gin.RouterGroup, emailSender portssvc.EmailSenderSvc) {
	h := NewFeedbackHandler(emailSender)
	rg.POST("/feedback", h.SendFeedback)
}

// SendFeedback godoc
// @Summary Send feedback to the team
// @Tags feedback
// @Accept json
// @Produce json
// @Param body body dto.FeedbackRequest true "Feedback"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /feedback [post]
func (h *FeedbackHandler) SendFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if err := h.emailSender.SendFeedbackEmail(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Feedback sent. Thank you!"})
}
