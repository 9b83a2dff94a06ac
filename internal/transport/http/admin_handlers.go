package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandlers exposes the moderation and user-management endpoints.
// Both are stubs: routed and validated, no behavior behind them.
type AdminHandlers struct {
	log *zerolog.Logger
}

// NewAdminHandlers creates a new admin handlers instance.
func NewAdminHandlers(logger *zerolog.Logger) *AdminHandlers {
	return &AdminHandlers{log: logger}
}

// ModerateRequest represents the moderation request body.
type ModerateRequest struct {
	Room      string `json:"room" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// ManageUsersRequest represents the user-management request body.
type ManageUsersRequest struct {
	User string `json:"user" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Moderate handles message moderation requests.
// POST /admin/moderate
func (h *AdminHandlers) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.log.Info().Str("room", req.Room).Str("action", req.Action).Msg("moderation requested (stub)")
	c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "moderation is not implemented"})
}

// ManageUsers handles user-role management requests.
// POST /admin/manage-users
func (h *AdminHandlers) ManageUsers(c *gin.Context) {
	var req ManageUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.log.Info().Str("user", req.User).Str("role", req.Role).Msg("user management requested (stub)")
	c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "user management is not implemented"})
}
