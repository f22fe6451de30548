package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dualserve/dualserve/internal/registry"
	"github.com/dualserve/dualserve/internal/users"
)

// GetAllUsers handles GET /api/users
func (h *Handler) GetAllUsers(c *gin.Context) {
	result, ok := h.invoke(c, "GetAllUsers", &registry.EmptyArgs{})
	if !ok {
		return
	}
	resp := result.(*users.UsersListResponse)

	if !resp.Success {
		c.JSON(statusForKind(resp.Kind), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUserByID handles GET /api/users/:id
func (h *Handler) GetUserByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, ok := h.invoke(c, "GetUserById", &registry.UserIDArgs{UserID: id})
	if !ok {
		return
	}
	h.renderUserResponse(c, result.(*users.UserResponse), http.StatusOK)
}

// GetUserByEmail handles GET /api/users/by-email/:email
func (h *Handler) GetUserByEmail(c *gin.Context) {
	result, ok := h.invoke(c, "GetUserByEmail", &registry.EmailArgs{Email: c.Param("email")})
	if !ok {
		return
	}
	h.renderUserResponse(c, result.(*users.UserResponse), http.StatusOK)
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req users.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &users.UserResponse{
			Message: "Request body is required",
		})
		return
	}

	result, ok := h.invoke(c, "CreateUser", &registry.CreateUserArgs{Request: req})
	if !ok {
		return
	}
	resp := result.(*users.UserResponse)

	if resp.Success && resp.User != nil {
		c.Header("Location", fmt.Sprintf("/api/users/%d", resp.User.ID))
	}
	h.renderUserResponse(c, resp, http.StatusCreated)
}

// UpdateUser handles PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var user users.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, &users.UserResponse{
			Message: "Request body is required",
		})
		return
	}

	if id != user.ID {
		c.JSON(http.StatusBadRequest, &users.UserResponse{
			Message: "ID in URL must match ID in request body",
		})
		return
	}

	result, ok := h.invoke(c, "UpdateUser", &registry.UpdateUserArgs{User: user})
	if !ok {
		return
	}
	h.renderUserResponse(c, result.(*users.UserResponse), http.StatusOK)
}

// DeleteUser handles DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, ok := h.invoke(c, "DeleteUser", &registry.UserIDArgs{UserID: id})
	if !ok {
		return
	}
	h.renderUserResponse(c, result.(*users.UserResponse), http.StatusOK)
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, &users.UserResponse{
			Message: "User id must be an integer",
		})
		return 0, false
	}
	return id, true
}

func (h *Handler) renderUserResponse(c *gin.Context, resp *users.UserResponse, successStatus int) {
	if !resp.Success {
		c.JSON(statusForKind(resp.Kind), resp)
		return
	}
	c.JSON(successStatus, resp)
}
