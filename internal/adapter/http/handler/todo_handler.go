package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/pkg/telemetry"
)

type TodoHandler struct {
	svc     port.TodoService
	metrics *telemetry.AppMetrics
}

func NewTodoHandler(svc port.TodoService, metrics *telemetry.AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (h *TodoHandler) recordOperation(operation string) {
	if h.metrics != nil {
		h.metrics.RecordTodoOperation(operation)
	}
}

func todoResponse(todo domain.Todo) response.TodoResponse {
	return response.TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		UserID:      todo.UserID,
	}
}

// GetTodosByUser lists the todos of the user named by the user_id query
// parameter. The list endpoint uses a query parameter so it cannot
// collide with GetTodoByID on /api/todos/:id.
func (h *TodoHandler) GetTodosByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)

	if err != nil {
		helper.SendBadRequestError(c, "user_id", "must be a numeric id")
		return
	}

	todos, err := h.svc.GetByUser(c.Request.Context(), userID)

	if err != nil {
		helper.SendInternalError(c, "Error getting todos")
		return
	}

	data := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		data = append(data, todoResponse(todo))
	}

	helper.SendSuccess(c, http.StatusOK, data)
}

func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	todo, err := h.svc.GetByID(c.Request.Context(), id)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error getting todo")
		return
	}

	helper.SendSuccess(c, http.StatusOK, todoResponse(todo))
}

// CreateTodo persists a todo owned by the user in the path. A missing
// owner is a 404 and nothing is stored.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := parseID(c, "userId")

	if !ok {
		return
	}

	var params request.TodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo := domain.Todo{
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   params.CreatedAt,
		UpdatedAt:   params.UpdatedAt,
	}

	saved, err := h.svc.Create(c.Request.Context(), userID, todo)

	if errors.Is(err, domain.ErrUserNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error creating todo")
		return
	}

	h.recordOperation("create")
	helper.SendSuccess(c, http.StatusOK, todoResponse(saved))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	var params request.TodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo := domain.Todo{
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   params.CreatedAt,
		UpdatedAt:   params.UpdatedAt,
	}

	saved, err := h.svc.Update(c.Request.Context(), id, todo)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error updating todo")
		return
	}

	h.recordOperation("update")
	helper.SendSuccess(c, http.StatusOK, todoResponse(saved))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error deleting todo")
		return
	}

	h.recordOperation("delete")
	c.Status(http.StatusNoContent)
}
