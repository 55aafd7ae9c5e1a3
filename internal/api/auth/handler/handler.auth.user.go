// Package authhdl - handler cho các route định danh và kênh.
package authhdl

import (
	"github.com/gofiber/fiber/v3"

	"atom_video/internal/api/auth/dto"
	authsvc "atom_video/internal/api/auth/service"
	basehdl "atom_video/internal/api/base/handler"
)

// UserHandler xử lý các route đăng ký, đăng nhập, hồ sơ và đăng ký kênh
type UserHandler struct {
	service *authsvc.UserService
}

// NewUserHandler tạo một instance mới của UserHandler
func NewUserHandler() *UserHandler {
	return &UserHandler{service: authsvc.NewUserService()}
}

// HandleRegister đăng ký tài khoản mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.RegisterInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		user, err := h.service.Register(c.Context(), &input)
		return basehdl.HandleResponse(c, user, err)
	})
}

// HandleLogin đăng nhập bằng handle hoặc email, trả về token phiên
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.LoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		token, user, err := h.service.Login(c.Context(), input.Login, input.Password)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, dto.LoginResult{Token: token, User: user}, nil)
	})
}

// HandleLogout thu hồi token của phiên hiện tại
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		token, _ := c.Locals("session_token").(string)
		h.service.Logout(c.Context(), token)
		return basehdl.HandleResponse(c, nil, nil)
	})
}

// HandleGetProfile trả về hồ sơ đầy đủ của người dùng đang đăng nhập
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		user, err := h.service.FindOneById(c.Context(), userID)
		return basehdl.HandleResponse(c, user, err)
	})
}

// HandleUpdateProfile cập nhật hồ sơ của người dùng đang đăng nhập
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.UpdateProfileInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		user, err := h.service.UpdateProfile(c.Context(), userID, &input)
		return basehdl.HandleResponse(c, user, err)
	})
}

// HandleChangePassword đổi mật khẩu rồi thu hồi mọi phiên của tài khoản
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.ChangePasswordInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.ChangePassword(c.Context(), userID, &input)
		return basehdl.HandleResponse(c, nil, err)
	})
}

// HandleGetChannel trả về trang kênh công khai của một người dùng.
// Người xem đã đăng nhập nhận thêm cờ isSubscribed.
func (h *UserHandler) HandleGetChannel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		channelID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		user, err := h.service.FindOneById(c.Context(), channelID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		viewerID := basehdl.OptionalUserIDFromContext(c)
		return basehdl.HandleResponse(c, fiber.Map{
			"channel":         user.Public(),
			"bio":             user.Bio,
			"subscriberCount": user.SubscriberCount,
			"mediaCount":      user.MediaCount,
			"totalViews":      user.TotalViews,
			"isSubscribed":    h.service.IsSubscribed(c.Context(), viewerID, channelID),
		}, nil)
	})
}

// HandleSubscribe đăng ký kênh trong path param
func (h *UserHandler) HandleSubscribe(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		channelID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.Subscribe(c.Context(), userID, channelID)
		return basehdl.HandleResponse(c, nil, err)
	})
}

// HandleUnsubscribe hủy đăng ký kênh trong path param
func (h *UserHandler) HandleUnsubscribe(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		channelID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.Unsubscribe(c.Context(), userID, channelID)
		return basehdl.HandleResponse(c, nil, err)
	})
}
