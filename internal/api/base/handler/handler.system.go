package basehdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"atom_video/internal/common"
	"atom_video/internal/global"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng hệ thống.
// Store trong bộ nhớ không có kết nối ngoài nên chỉ báo trạng thái store
// và số bảng đã đăng ký.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services": fiber.Map{
			"api": "ok",
		},
	}

	if global.Store != nil {
		healthData["services"].(fiber.Map)["store"] = "ok"
		healthData["tables"] = len(global.Store.TableNames())
	} else {
		healthData["status"] = "degraded"
		healthData["services"].(fiber.Map)["store"] = "not_initialized"
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
