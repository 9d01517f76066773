package handler

import (
	identityapp "github.com/gabbai/backend/internal/application/identity"
	"github.com/gabbai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles operator account management. All routes require
// an admin token.
type UserHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *identityapp.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// RegisterRoutes registers user management routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.AdminOnly())
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.DELETE("/:id", h.Delete)
	}
}

// List returns all operator accounts
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Create adds an operator account
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Delete removes an operator account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
