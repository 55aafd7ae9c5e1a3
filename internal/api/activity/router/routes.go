// Package router đăng ký các route thuộc domain activity.
package router

import (
	"github.com/gofiber/fiber/v3"

	activityhdl "atom_video/internal/api/activity/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route nhật ký hoạt động lên v1
func Register(v1 fiber.Router) {
	activityHandler := activityhdl.NewActivityHandler()
	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.AdminMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/me", "GET", "/activity", []fiber.Handler{authMiddleware}, activityHandler.HandleListMine)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/activity", "GET", "/", []fiber.Handler{authMiddleware, adminMiddleware}, activityHandler.HandleListByTarget)
}
