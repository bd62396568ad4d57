package handler

import (
	"net/http"

	"cartroyal/internal/repository"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users *repository.UserRepository
}

func NewAdminHandler(users *repository.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns registered users, newest first. Admin only.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, page, offset := pagination(c)
	users, total, err := h.users.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Users Retrieved",
		"data": gin.H{
			"limit":       limit,
			"currentPage": page,
			"totalPages":  (total + int64(limit) - 1) / int64(limit),
			"totalItems":  total,
			"users":       users,
		},
	})
}
