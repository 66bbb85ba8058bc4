// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/statistics/handler"
	"github.com/festy23/team_tasks/internal/statistics/repository"
	"github.com/festy23/team_tasks/internal/statistics/service"
	teamRepository "github.com/festy23/team_tasks/internal/team/repository"
)

// RegisterRoutes registers statistics module routes behind authMW.
func RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, teamRepository.New(db, logger), logger)
	h := handler.New(svc, logger)

	stats := r.Group("/statistics", authMW)
	stats.GET("/assignees", h.GetAssigneesStatistics)
	stats.GET("/tasks", h.GetTaskStatistics)
}
