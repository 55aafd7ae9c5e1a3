// Package router đăng ký các route thuộc domain auth: đăng ký, đăng
// nhập, hồ sơ, kênh và system.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "atom_video/internal/api/auth/handler"
	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route auth và system lên v1
func Register(v1 fiber.Router) {
	registerSystemRoutes(v1)
	registerAuthRoutes(v1)
	registerChannelRoutes(v1)
}

func registerSystemRoutes(v1 fiber.Router) {
	systemHandler := basehdl.NewSystemHandler()
	v1.Get("/system/health", systemHandler.HandleHealth)
}

func registerAuthRoutes(v1 fiber.Router) {
	userHandler := authhdl.NewUserHandler()
	v1.Post("/auth/register", userHandler.HandleRegister)
	v1.Post("/auth/login", userHandler.HandleLogin)

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", []fiber.Handler{authMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/password", []fiber.Handler{authMiddleware}, userHandler.HandleChangePassword)
}

func registerChannelRoutes(v1 fiber.Router) {
	userHandler := authhdl.NewUserHandler()
	optionalAuth := middleware.OptionalAuthMiddleware()
	authMiddleware := middleware.AuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:id", []fiber.Handler{optionalAuth}, userHandler.HandleGetChannel)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "POST", "/:id/subscribe", []fiber.Handler{authMiddleware}, userHandler.HandleSubscribe)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "DELETE", "/:id/subscribe", []fiber.Handler{authMiddleware}, userHandler.HandleUnsubscribe)
}
