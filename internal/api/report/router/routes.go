// Package router đăng ký các route thuộc domain report.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/middleware"
	"atom_video/internal/api/report/dto"
	reporthdl "atom_video/internal/api/report/handler"
	reportmodels "atom_video/internal/api/report/models"
	reportsvc "atom_video/internal/api/report/service"
	apirouter "atom_video/internal/api/router"
)

// Register đăng ký tất cả route báo cáo lên v1
func Register(v1 fiber.Router) {
	reportHandler := reporthdl.NewReportHandler()
	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.AdminMiddleware()
	adminChain := []fiber.Handler{authMiddleware, adminMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "POST", "/", []fiber.Handler{authMiddleware}, reportHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/reports", "GET", "/", adminChain, reportHandler.HandleListPending)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/reports", "POST", "/:id/resolve", adminChain, reportHandler.HandleResolve)

	// Tra cứu thô toàn bảng reports cho admin, đi qua handler CRUD generic.
	// Route cố định (/all, /count) phải đăng ký trước /:id.
	reportCRUD := basehdl.NewBaseHandler[reportmodels.Report, dto.CreateReportInput, dto.ResolveReportInput](
		reportsvc.NewReportService().BaseServiceMemory)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/reports", "GET", "/all", adminChain, reportCRUD.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/reports", "GET", "/count", adminChain, reportCRUD.Count)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/reports", "GET", "/:id", adminChain, reportCRUD.FindOneById)
}
