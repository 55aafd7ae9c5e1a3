// Package notificationhdl - handler cho các route thông báo.
package notificationhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	notificationsvc "atom_video/internal/api/notification/service"
)

// NotificationHandler xử lý các route thông báo của người dùng
type NotificationHandler struct {
	service *notificationsvc.NotificationService
}

// NewNotificationHandler tạo một instance mới của NotificationHandler
func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{service: notificationsvc.NewNotificationService()}
}

// HandleListMine trả về thông báo của người dùng đang đăng nhập
func (h *NotificationHandler) HandleListMine(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindForRecipient(c.Context(), userID, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleUnreadCount trả về số thông báo chưa đọc
func (h *NotificationHandler) HandleUnreadCount(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		count, err := h.service.UnreadCount(c.Context(), userID)
		return basehdl.HandleResponse(c, fiber.Map{"unread": count}, err)
	})
}

// HandleMarkRead đánh dấu một thông báo là đã đọc
func (h *NotificationHandler) HandleMarkRead(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.service.MarkRead(c.Context(), id, userID)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleMarkAllRead đánh dấu mọi thông báo của người dùng là đã đọc
func (h *NotificationHandler) HandleMarkAllRead(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		count, err := h.service.MarkAllRead(c.Context(), userID)
		return basehdl.HandleResponse(c, fiber.Map{"marked": count}, err)
	})
}
