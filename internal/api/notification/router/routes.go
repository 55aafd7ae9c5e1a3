// Package router đăng ký các route thuộc domain notification.
package router

import (
	"github.com/gofiber/fiber/v3"

	"atom_video/internal/api/middleware"
	notificationhdl "atom_video/internal/api/notification/handler"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route thông báo lên v1
func Register(v1 fiber.Router) {
	notificationHandler := notificationhdl.NewNotificationHandler()
	authMiddleware := middleware.AuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/me/notifications", "GET", "/", []fiber.Handler{authMiddleware}, notificationHandler.HandleListMine)
	apirouter.RegisterRouteWithMiddleware(v1, "/me/notifications", "GET", "/unread", []fiber.Handler{authMiddleware}, notificationHandler.HandleUnreadCount)
	apirouter.RegisterRouteWithMiddleware(v1, "/me/notifications", "POST", "/:id/read", []fiber.Handler{authMiddleware}, notificationHandler.HandleMarkRead)
	apirouter.RegisterRouteWithMiddleware(v1, "/me/notifications", "POST", "/read-all", []fiber.Handler{authMiddleware}, notificationHandler.HandleMarkAllRead)
}
