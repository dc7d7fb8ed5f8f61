package handler

import (
	appidentity "github.com/breezehub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users
// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	resp, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeRole reassigns a user's role
// PUT /api/v1/admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appidentity.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.userService.ChangeRole(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListRiders returns all rider accounts
// GET /api/v1/admin/riders
func (h *UserHandler) ListRiders(c *gin.Context) {
	resp, err := h.userService.ListRiders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateRider creates a rider account
// POST /api/v1/admin/riders
func (h *UserHandler) CreateRider(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.userService.CreateRider(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
