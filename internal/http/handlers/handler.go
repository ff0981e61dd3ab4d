package handlers

import (
	"net/http"

	"tasks_api/internal/db"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	UserRepo *repository.UserRepository
	TaskRepo *repository.TaskRepository
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{
		UserRepo: repository.NewUserRepository(store),
		TaskRepo: repository.NewTaskRepository(store),
	}
}

// Root answers GET / so clients can check the API is up.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is running!"})
}

// storeError reports a failed store call as 500 with the driver's message.
func storeError(c *gin.Context, op string, err error) {
	logger.With("request_id", middleware.RequestID(c), "route", c.FullPath()).
		Error(op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
