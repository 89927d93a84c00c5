package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// HabitHandler handles habit CRUD and completion toggling.
type HabitHandler struct {
	habitService portssvc.HabitSvcFacade
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService portssvc.HabitSvcFacade) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

// registerHabitRoutes sets up the habit routes.
func registerHabitRoutes(rg *gin.RouterGroup, habitService portssvc.HabitSvcFacade) {
	h := NewHabitHandler(habitService)
	habits := rg.Group("/habits")
	{
		habits.GET("", h.ListHabits)
		habits.POST("", h.CreateHabit)
		habits.PUT("/:id", h.UpdateHabit)
		habits.PUT("/:id/complete", h.ToggleCompletion)
		habits.DELETE("/:id", h.DeleteHabit)
	}
}

// ListHabits godoc
// @Summary List the user's habits
// @Tags habits
// @Produce json
// @Success 200 {array} domain.Habit
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /habits [get]
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	habits, err := h.habitService.ListHabits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// CreateHabit godoc
// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param body body dto.CreateHabitRequest true "Habit fields"
// @Success 201 {object} domain.Habit
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	habit, err := h.habitService.CreateHabit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit godoc
// @Summary Update a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param body body dto.UpdateHabitRequest true "Fields to change"
// @Success 200 {object} domain.Habit
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	habit, err := h.habitService.UpdateHabit(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// ToggleCompletion godoc
// @Summary Toggle a habit's completion for a day
// @Description Marks or unmarks the given calendar day (default today) and adjusts the streak.
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param body body dto.ToggleHabitCompletionRequest false "Day to toggle"
// @Success 200 {object} domain.Habit
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /habits/{id}/complete [put]
func (h *HabitHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.ToggleHabitCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	habit, err := h.habitService.ToggleHabitCompletion(c.Request.Context(), userID, c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// DeleteHabit godoc
// @Summary Delete a habit
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.habitService.DeleteHabit(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Habit deleted"})
}
