package handlers

import (
	"net/http"

	"Dayflow/internal/auth"
	dom "Dayflow/internal/domain"
	"Dayflow/internal/dto"
	"Dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskListHandler handles the /tasklist routes.
type TaskListHandler struct {
	svc *service.TaskListService
}

// NewTaskListHandler returns a new TaskListHandler.
func NewTaskListHandler(svc *service.TaskListService) *TaskListHandler {
	return &TaskListHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's task lists
// @Tags         tasklists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.TaskListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /tasklist [get]
func (h *TaskListHandler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	list, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListsToResponses(list))
}

// Create godoc
// @Summary      Create a task list at the tail of the caller's set
// @Tags         tasklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskListRequest  true  "Task list"
// @Success      201   {object}  dto.TaskListResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /tasklist [post]
func (h *TaskListHandler) Create(c *gin.Context) {
	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	tl, err := h.svc.Create(c.Request.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskListToResponse(tl))
}

// Reorder godoc
// @Summary      Move a task list to a new position
// @Tags         tasklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpdateOrderRequest  true  "Move"
// @Success      200   {array}   dto.TaskListResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /tasklist [patch]
func (h *TaskListHandler) Reorder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	list, err := h.svc.Reorder(c.Request.Context(), user.ID, req.ID, req.Order)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListsToResponses(list))
}

// Get godoc
// @Summary      Fetch one task list
// @Tags         tasklists
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string  true  "Task list ID"
// @Success      200  {object}  dto.TaskListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId} [get]
func (h *TaskListHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	tl, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListToResponse(tl))
}

// Update godoc
// @Summary      Replace a task list's title and description
// @Tags         tasklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tasklistId  path      string                     true  "Task list ID"
// @Param        body        body      dto.CreateTaskListRequest  true  "Replacement"
// @Success      200  {object}  dto.TaskListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId} [put]
func (h *TaskListHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	tl, err := h.svc.Update(c.Request.Context(), user.ID, id, req.Title, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListToResponse(tl))
}

// Delete godoc
// @Summary      Delete a task list and everything under it
// @Tags         tasklists
// @Security     BearerAuth
// @Param        tasklistId  path  string  true  "Task list ID"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasklist/{tasklistId} [delete]
func (h *TaskListHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "tasklistId")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func parseUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeError(c, http.StatusNotFound, "Not Found", nil)
		return uuid.Nil, false
	}
	return id, true
}

func taskListToResponse(tl dom.TaskList) dto.TaskListResponse {
	return dto.TaskListResponse{
		ID:          tl.ID,
		Title:       tl.Title,
		Description: tl.Description,
		Order:       tl.SortOrder,
		CreatedAt:   tl.CreatedAt,
		UpdatedAt:   tl.UpdatedAt,
	}
}

func taskListsToResponses(list []dom.TaskList) []dto.TaskListResponse {
	out := make([]dto.TaskListResponse, len(list))
	for i := range list {
		out[i] = taskListToResponse(list[i])
	}
	return out
}
