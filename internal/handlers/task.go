package handlers

import (
	"net/http"

	"Dayflow/internal/auth"
	dom "Dayflow/internal/domain"
	"Dayflow/internal/dto"
	"Dayflow/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles the /tasklist/{tasklistId}/tasks routes.
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler returns a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// isCompletedQuery reads the is_completed flag selecting the ordering
// scope; anything but "true" means pending.
func isCompletedQuery(c *gin.Context) bool {
	return c.DefaultQuery("is_completed", "false") == "true"
}

// List godoc
// @Summary      List a task list's tasks with the given completion flag
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId    path      string  true   "Task list ID"
// @Param        is_completed  query     bool    false  "Completion scope (default false)"
// @Success      200  {array}   dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	tasks, err := h.svc.List(c.Request.Context(), user.ID, tasklistID, isCompletedQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(tasks))
}

// Create godoc
// @Summary      Create a task, optionally with inline steps
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string                 true  "Task list ID"
// @Param        body        body      dto.CreateTaskRequest  true  "Task"
// @Success      201  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := service.NewTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Reminder:    req.Reminder,
		DueDate:     req.DueDate,
	}
	for _, st := range req.Steps {
		in.Steps = append(in.Steps, service.NewStepInput{Title: st.Title, Description: st.Description})
	}
	user := auth.CurrentUser(c)
	t, err := h.svc.Create(c.Request.Context(), user.ID, tasklistID, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Reorder godoc
// @Summary      Move a task to a new position within its scope
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId    path      string                  true   "Task list ID"
// @Param        is_completed  query     bool                    false  "Completion scope (default false)"
// @Param        body          body      dto.UpdateOrderRequest  true   "Move"
// @Success      200  {array}   dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks [patch]
func (h *TaskHandler) Reorder(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	tasks, err := h.svc.Reorder(c.Request.Context(), user.ID, tasklistID, isCompletedQuery(c), req.ID, req.Order)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(tasks))
}

// Get godoc
// @Summary      Fetch one task with its steps
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string  true  "Task list ID"
// @Param        taskId      path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	t, err := h.svc.Get(c.Request.Context(), user.ID, tasklistID, taskID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string                        true  "Task list ID"
// @Param        taskId      path      string                        true  "Task ID"
// @Param        body        body      dto.PartialUpdateTaskRequest  true  "Fields to change"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	var req dto.PartialUpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	t, err := h.svc.PartialUpdate(c.Request.Context(), user.ID, tasklistID, taskID, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Reminder:    req.Reminder,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task and its steps
// @Tags         tasks
// @Security     BearerAuth
// @Param        tasklistId  path  string  true  "Task list ID"
// @Param        taskId      path  string  true  "Task ID"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	tasklistID, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, tasklistID, taskID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	steps := make([]dto.StepResponse, len(t.Steps))
	for i, s := range t.Steps {
		steps[i] = stepToResponse(s)
	}
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TasklistID:  t.TasklistID,
		IsCompleted: t.IsCompleted,
		Reminder:    t.Reminder,
		DueDate:     t.DueDate,
		Order:       t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Steps:       steps,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
