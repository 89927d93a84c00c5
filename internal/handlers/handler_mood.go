package handlers

import (
	"net/http"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// MoodHandler handles the mood log.
type MoodHandler struct {
	moodService portssvc.MoodSvcFacade
}

// NewMoodHandler creates a new MoodHandler.
func NewMoodHandler(moodService portssvc.MoodSvcFacade) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// registerMoodRoutes sets up the mood routes.
func registerMoodRoutes(rg *gin.RouterGroup, moodService portssvc.MoodSvcFacade) {
	h := NewMoodHandler(moodService)
	moods := rg.Group("/moods")
	{
		moods.GET("", h.ListMoods)
		moods.POST("", h.LogMood)
	}
}

// ListMoods godoc
// @Summary List the user's mood history, newest first
// @Tags moods
// @Produce json
// @Success 200 {array} domain.Mood
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /moods [get]
func (h *MoodHandler) ListMoods(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	moods, err := h.moodService.ListMoods(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moods)
}

// LogMood godoc
// @Summary Record a mood entry
// @Tags moods
// @Accept json
// @Produce json
// @Param body body dto.LogMoodRequest true "Mood score (1-5), note and date"
// @Success 201 {object} domain.Mood
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /moods [post]
func (h *MoodHandler) LogMood(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	mood, err := h.moodService.LogMood(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mood)
}
