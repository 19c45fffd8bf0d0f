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

type UserHandler struct {
	svc     port.UserService
	metrics *telemetry.AppMetrics
}

func NewUserHandler(svc port.UserService, metrics *telemetry.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (h *UserHandler) recordOperation(operation string) {
	if h.metrics != nil {
		h.metrics.RecordUserOperation(operation)
	}
}

func userResponse(user domain.User) response.UserResponse {
	return response.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)

	if err != nil {
		helper.SendBadRequestError(c, name, "must be a numeric id")
		return 0, false
	}

	return id, true
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.UserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user := domain.User{
		Username: params.Username,
		FullName: params.FullName,
		Email:    params.Email,
		Password: params.Password,
	}

	saved, err := h.svc.Create(ctx, user)

	if err != nil {
		helper.SendInternalError(c, "Error creating user")
		return
	}

	h.recordOperation("create")
	helper.SendSuccess(c, http.StatusOK, userResponse(saved))
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.svc.GetAll(c.Request.Context())

	if err != nil {
		helper.SendInternalError(c, "Error getting users")
		return
	}

	data := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		data = append(data, userResponse(user))
	}

	helper.SendSuccess(c, http.StatusOK, data)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)

	if errors.Is(err, domain.ErrUserNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error getting user")
		return
	}

	helper.SendSuccess(c, http.StatusOK, userResponse(user))
}

func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))

	if errors.Is(err, domain.ErrUserNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error getting user")
		return
	}

	helper.SendSuccess(c, http.StatusOK, userResponse(user))
}

// UpdateUser overwrites fullName, email and password. A username carried
// in the body is ignored.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	var params request.UserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user := domain.User{
		FullName: params.FullName,
		Email:    params.Email,
		Password: params.Password,
	}

	saved, err := h.svc.Update(c.Request.Context(), id, user)

	if errors.Is(err, domain.ErrUserNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error updating user")
		return
	}

	h.recordOperation("update")
	helper.SendSuccess(c, http.StatusOK, userResponse(saved))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")

	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)

	if errors.Is(err, domain.ErrUserNotFound) {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	if err != nil {
		helper.SendInternalError(c, "Error deleting user")
		return
	}

	h.recordOperation("delete")
	c.Status(http.StatusNoContent)
}
