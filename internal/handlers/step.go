package handlers

import (
	"net/http"

	"Dayflow/internal/auth"
	dom "Dayflow/internal/domain"
	"Dayflow/internal/dto"
	"Dayflow/internal/service"

	"github.com/gin-gonic/gin"
)

// StepHandler handles the step routes under a task.
type StepHandler struct {
	svc *service.StepService
}

// NewStepHandler returns a new StepHandler.
func NewStepHandler(svc *service.StepService) *StepHandler {
	return &StepHandler{svc: svc}
}

// Create godoc
// @Summary      Create a step under a task
// @Tags         steps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string                 true  "Task list ID"
// @Param        taskId      path      string                 true  "Task ID"
// @Param        body        body      dto.CreateStepRequest  true  "Step"
// @Success      201  {object}  dto.StepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId}/steps [post]
func (h *StepHandler) Create(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	var req dto.CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	st, err := h.svc.Create(c.Request.Context(), user.ID, tasklistID, taskID, req.Title, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stepToResponse(st))
}

// Replace godoc
// @Summary      Replace a step's title
// @Tags         steps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string                 true  "Task list ID"
// @Param        taskId      path      string                 true  "Task ID"
// @Param        stepId      path      string                 true  "Step ID"
// @Param        body        body      dto.CreateStepRequest  true  "Replacement"
// @Success      200  {object}  dto.StepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId}/steps/{stepId} [put]
func (h *StepHandler) Replace(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	stepID, ok := parseUUID(c, "stepId")
	if !ok {
		return
	}
	var req dto.CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	st, err := h.svc.ReplaceTitle(c.Request.Context(), user.ID, tasklistID, taskID, stepID, req.Title)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stepToResponse(st))
}

// Delete godoc
// @Summary      Delete a step
// @Tags         steps
// @Security     BearerAuth
// @Param        tasklistId  path  string  true  "Task list ID"
// @Param        taskId      path  string  true  "Task ID"
// @Param        stepId      path  string  true  "Step ID"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId}/steps/{stepId} [delete]
func (h *StepHandler) Delete(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	stepID, ok := parseUUID(c, "stepId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, tasklistID, taskID, stepID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func stepToResponse(s dom.Step) dto.StepResponse {
	return dto.StepResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		IsCompleted: s.IsCompleted,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
