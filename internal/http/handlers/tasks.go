package handlers

import (
	"errors"
	"net/http"

	"tasks_api/internal/domain"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListTasks returns tasks newest first.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.TaskRepo.List(c.Request.Context())
	if err != nil {
		storeError(c, "list tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tarefas": tasks, "total": len(tasks)})
}

// CreateTask expects middleware.ValidTask in front of it. New tasks always
// start not completed.
func (h *Handler) CreateTask(c *gin.Context) {
	in := middleware.TaskInput(c)

	task := &domain.Task{Title: in.Title, Description: in.Description}
	if err := h.TaskRepo.Create(c.Request.Context(), task); err != nil {
		storeError(c, "create task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        task.ID,
		"titulo":    task.Title,
		"descricao": task.Description,
		"mensagem":  "Task created successfully!",
	})
}

// UpdateTask replaces every mutable field: an omitted descricao becomes null
// and an omitted concluida becomes false.
func (h *Handler) UpdateTask(c *gin.Context) {
	id := middleware.ID(c)
	in := middleware.TaskInput(c)

	task := &domain.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   bool(in.Completed),
	}
	if err := h.TaskRepo.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		storeError(c, "update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"titulo":    task.Title,
		"descricao": task.Description,
		"concluida": task.Completed,
		"mensagem":  "Task updated successfully!",
	})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id := middleware.ID(c)

	if err := h.TaskRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		storeError(c, "delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "mensagem": "Task removed successfully!"})
}
