// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/user/handler"
	"github.com/festy23/team_tasks/internal/user/repository"
	"github.com/festy23/team_tasks/internal/user/service"
)

// RegisterRoutes registers account routes. /auth routes are public, /users
// routes run behind authMW.
func RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc, db *gorm.DB, tokens service.TokenIssuer, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, tokens, logger)
	h := handler.New(svc, logger)

	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	r.GET("/users/me", authMW, h.Me)
}
