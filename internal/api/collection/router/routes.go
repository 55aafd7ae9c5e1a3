// Package router đăng ký các route thuộc domain collection.
package router

import (
	"github.com/gofiber/fiber/v3"

	collectionhdl "atom_video/internal/api/collection/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route danh sách phát lên v1
func Register(v1 fiber.Router) {
	collectionHandler := collectionhdl.NewCollectionHandler()
	authMiddleware := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "GET", "/:id", []fiber.Handler{optionalAuth}, collectionHandler.HandleDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:id/collections", []fiber.Handler{optionalAuth}, collectionHandler.HandleListByOwner)

	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "POST", "/", []fiber.Handler{authMiddleware}, collectionHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "PUT", "/:id", []fiber.Handler{authMiddleware}, collectionHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "DELETE", "/:id", []fiber.Handler{authMiddleware}, collectionHandler.HandleDelete)

	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "POST", "/:id/items", []fiber.Handler{authMiddleware}, collectionHandler.HandleAddItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "DELETE", "/:id/items/:mediaId", []fiber.Handler{authMiddleware}, collectionHandler.HandleRemoveItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/collections", "PUT", "/:id/items/move", []fiber.Handler{authMiddleware}, collectionHandler.HandleMoveItem)
}
