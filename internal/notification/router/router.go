// Package router provides notification module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/notification/handler"
	"github.com/festy23/team_tasks/internal/notification/repository"
)

// RegisterRoutes registers notification routes behind authMW.
func RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc, db *gorm.DB, logger *zap.SugaredLogger) {
	h := handler.New(repository.New(db, logger), logger)

	r.GET("/notifications", authMW, h.List)
}
