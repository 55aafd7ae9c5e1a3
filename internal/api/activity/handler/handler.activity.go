// Package activityhdl - handler cho các route nhật ký hoạt động.
package activityhdl

import (
	"github.com/gofiber/fiber/v3"

	activitysvc "atom_video/internal/api/activity/service"
	basehdl "atom_video/internal/api/base/handler"
)

// ActivityHandler xử lý các route đọc nhật ký hoạt động
type ActivityHandler struct {
	service *activitysvc.ActivityService
}

// NewActivityHandler tạo một instance mới của ActivityHandler
func NewActivityHandler() *ActivityHandler {
	return &ActivityHandler{service: activitysvc.NewActivityService()}
}

// HandleListMine trả về nhật ký hoạt động của người dùng đang đăng nhập
func (h *ActivityHandler) HandleListMine(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindByActor(c.Context(), userID, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleListByTarget trả về nhật ký trỏ tới một đối tượng.
// Query params: target, targetId.
func (h *ActivityHandler) HandleListByTarget(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		target := c.Query("target")
		targetID := c.Query("targetId")
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindByTarget(c.Context(), target, targetID, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}
