// Package router đăng ký các route thuộc domain comment.
package router

import (
	"github.com/gofiber/fiber/v3"

	commenthdl "atom_video/internal/api/comment/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route bình luận lên v1
func Register(v1 fiber.Router) {
	commentHandler := commenthdl.NewCommentHandler()
	authMiddleware := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/media", "GET", "/:id/comments", []fiber.Handler{optionalAuth}, commentHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/comments", []fiber.Handler{authMiddleware}, commentHandler.HandleAdd)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "POST", "/:id/like", []fiber.Handler{authMiddleware}, commentHandler.HandleToggleLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "DELETE", "/:id", []fiber.Handler{authMiddleware}, commentHandler.HandleDelete)
}
