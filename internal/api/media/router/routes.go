// Package router đăng ký các route thuộc domain media.
package router

import (
	"github.com/gofiber/fiber/v3"

	mediahdl "atom_video/internal/api/media/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route media lên v1
func Register(v1 fiber.Router) {
	mediaHandler := mediahdl.NewMediaHandler()
	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.AdminMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()

	// Đọc và tìm kiếm
	v1.Get("/media", mediaHandler.HandleSearch)
	v1.Get("/media/tags", mediaHandler.HandleListTags)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "GET", "/:id", []fiber.Handler{optionalAuth}, mediaHandler.HandleDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:id/media", []fiber.Handler{optionalAuth}, mediaHandler.HandleListByOwner)

	// Vòng đời
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/", []fiber.Handler{authMiddleware}, mediaHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "PUT", "/:id", []fiber.Handler{authMiddleware}, mediaHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "DELETE", "/:id", []fiber.Handler{authMiddleware}, mediaHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/publish", []fiber.Handler{authMiddleware}, mediaHandler.HandlePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/reject", []fiber.Handler{authMiddleware, adminMiddleware}, mediaHandler.HandleReject)

	// Tương tác
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/like", []fiber.Handler{authMiddleware}, mediaHandler.HandleToggleLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/dislike", []fiber.Handler{authMiddleware}, mediaHandler.HandleToggleDislike)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/favorite", []fiber.Handler{authMiddleware}, mediaHandler.HandleToggleFavorite)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/view", []fiber.Handler{optionalAuth}, mediaHandler.HandleRecordView)
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/progress", []fiber.Handler{authMiddleware}, mediaHandler.HandleUpdateProgress)

	// Dữ liệu cá nhân
	apirouter.RegisterRouteWithMiddleware(v1, "/me", "GET", "/history", []fiber.Handler{authMiddleware}, mediaHandler.HandleWatchHistory)
	apirouter.RegisterRouteWithMiddleware(v1, "/me", "GET", "/favorites", []fiber.Handler{authMiddleware}, mediaHandler.HandleFavorites)
}
