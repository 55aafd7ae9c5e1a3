// Package middleware - các middleware xác thực của ứng dụng.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	authsvc "atom_video/internal/api/auth/service"
	basehdl "atom_video/internal/api/base/handler"
	authmodels "atom_video/internal/api/auth/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
)

// bearerToken tách token mờ từ header Authorization: Bearer <token>
func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware yêu cầu request mang token phiên hợp lệ.
// Token được resolve qua registry phiên; token của tài khoản đã mất hoặc
// bị khóa hết hiệu lực ngay. user_id và session_token được lưu vào Locals
// cho handler phía sau.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		userID, err := global.Store.Sessions.Resolve(token)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		c.Locals("user_id", userID)
		c.Locals("session_token", token)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolve token nếu có, cho qua nếu không.
// Dùng cho các endpoint đọc công khai có projection phụ thuộc người xem.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}
		if userID, err := global.Store.Sessions.Resolve(token); err == nil {
			c.Locals("user_id", userID)
			c.Locals("session_token", token)
		}
		return c.Next()
	}
}

// AdminMiddleware yêu cầu người dùng đã xác thực có vai trò admin.
// Đặt sau AuthMiddleware trong chuỗi middleware.
func AdminMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		user, err := authsvc.UserTable().FindOneByID(userID)
		if err != nil || user.Role != authmodels.RoleAdmin {
			return basehdl.HandleResponse(c, nil, common.ErrPermission)
		}
		return c.Next()
	}
}
