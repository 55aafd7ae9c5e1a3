// Package router đăng ký các route thuộc domain ledger.
package router

import (
	"github.com/gofiber/fiber/v3"

	ledgerhdl "atom_video/internal/api/ledger/handler"
	"atom_video/internal/api/middleware"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route ledger lên v1
func Register(v1 fiber.Router) {
	ledgerHandler := ledgerhdl.NewLedgerHandler()
	authMiddleware := middleware.AuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/me/ledger", "GET", "/", []fiber.Handler{authMiddleware}, ledgerHandler.HandleListMine)
	apirouter.RegisterRouteWithMiddleware(v1, "/me/ledger", "GET", "/balance", []fiber.Handler{authMiddleware}, ledgerHandler.HandleBalance)
	apirouter.RegisterRouteWithMiddleware(v1, "/me/ledger", "POST", "/settle", []fiber.Handler{authMiddleware}, ledgerHandler.HandleSettleAll)
}
