// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/team/handler"
	"github.com/festy23/team_tasks/internal/team/repository"
	"github.com/festy23/team_tasks/internal/team/service"
	userRepository "github.com/festy23/team_tasks/internal/user/repository"
)

// RegisterRoutes registers team routes behind authMW.
func RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, userRepository.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams", authMW)
	teams.GET("", h.ListTeams)
	teams.POST("", h.CreateTeam)
	teams.GET("/:id/members", h.GetMembers)
	teams.POST("/:id/members", h.AddMember)
	teams.DELETE("/:id/members/:memberId", h.RemoveMember)
}
