package handlers

import (
	"net/http"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles task CRUD for the authenticated user.
type TaskHandler struct {
	taskService portssvc.TaskSvcFacade
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService portssvc.TaskSvcFacade) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// registerTaskRoutes sets up the task routes.
func registerTaskRoutes(rg *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := NewTaskHandler(taskService)
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

// ListTasks godoc
// @Summary List the user's tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} domain.Task
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param body body dto.CreateTaskRequest true "Task fields"
// @Success 201 {object} domain.Task
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} domain.Task
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}
