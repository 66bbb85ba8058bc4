// Package router provides task module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/task/handler"
	"github.com/festy23/team_tasks/internal/task/repository"
	"github.com/festy23/team_tasks/internal/task/service"
	teamRepository "github.com/festy23/team_tasks/internal/team/repository"
)

// RegisterRoutes registers task routes behind authMW. Assignments are
// reported to notifier.
func RegisterRoutes(
	r gin.IRouter,
	authMW gin.HandlerFunc,
	db *gorm.DB,
	notifier service.AssignmentNotifier,
	logger *zap.SugaredLogger,
) {
	svc := service.New(repository.New(db, logger), teamRepository.New(db, logger), notifier, logger)
	h := handler.New(svc, logger)

	tasks := r.Group("/tasks", authMW)
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.PATCH("/:id/subtasks/:subtaskId", h.SetSubtaskCompleted)
}
