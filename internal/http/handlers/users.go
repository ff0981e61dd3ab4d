package handlers

import (
	"errors"
	"net/http"

	"tasks_api/internal/domain"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserRepo.List(c.Request.Context())
	if err != nil {
		storeError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuarios": users, "total": len(users)})
}

// CreateUser expects middleware.ValidUser in front of it.
func (h *Handler) CreateUser(c *gin.Context) {
	in := middleware.UserInput(c)

	u := &domain.User{Name: in.Name, Email: in.Email}
	if err := h.UserRepo.Create(c.Request.Context(), u); err != nil {
		storeError(c, "create user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       u.ID,
		"nome":     u.Name,
		"email":    u.Email,
		"mensagem": "User created successfully!",
	})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id := middleware.ID(c)
	in := middleware.UserInput(c)

	u := &domain.User{ID: id, Name: in.Name, Email: in.Email}
	if err := h.UserRepo.Update(c.Request.Context(), u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		storeError(c, "update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"nome":     u.Name,
		"email":    u.Email,
		"mensagem": "User updated successfully!",
	})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := middleware.ID(c)

	if err := h.UserRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		storeError(c, "delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "mensagem": "User deleted successfully!"})
}
