package mediahdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/media/dto"
)

// toggleHandler dựng handler cho một thao tác toggle trên media
func (h *MediaHandler) toggleHandler(toggle func(c fiber.Ctx, userID, mediaID string) (bool, error), flagName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return basehdl.SafeHandler(c, func() error {
			userID, err := basehdl.UserIDFromContext(c)
			if err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
			id, err := basehdl.RequireParam(c, "id")
			if err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
			on, err := toggle(c, userID, id)
			if err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
			return basehdl.HandleResponse(c, fiber.Map{flagName: on}, nil)
		})
	}
}

// HandleToggleLike đảo trạng thái thích media
func (h *MediaHandler) HandleToggleLike(c fiber.Ctx) error {
	return h.toggleHandler(func(c fiber.Ctx, userID, mediaID string) (bool, error) {
		return h.service.ToggleLike(c.Context(), userID, mediaID)
	}, "isLiked")(c)
}

// HandleToggleDislike đảo trạng thái không thích media
func (h *MediaHandler) HandleToggleDislike(c fiber.Ctx) error {
	return h.toggleHandler(func(c fiber.Ctx, userID, mediaID string) (bool, error) {
		return h.service.ToggleDislike(c.Context(), userID, mediaID)
	}, "isDisliked")(c)
}

// HandleToggleFavorite đảo trạng thái lưu yêu thích media
func (h *MediaHandler) HandleToggleFavorite(c fiber.Ctx) error {
	return h.toggleHandler(func(c fiber.Ctx, userID, mediaID string) (bool, error) {
		return h.service.ToggleFavorite(c.Context(), userID, mediaID)
	}, "isFavorited")(c)
}

// HandleRecordView ghi nhận một lượt xem; người xem ẩn danh vẫn được tính
func (h *MediaHandler) HandleRecordView(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		media, err := h.service.RecordView(c.Context(), id, basehdl.OptionalUserIDFromContext(c))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"viewCount": media.ViewCount}, nil)
	})
}

// HandleUpdateProgress cập nhật vị trí đang xem dở
func (h *MediaHandler) HandleUpdateProgress(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.UpdateProgressInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.UpdateProgress(c.Context(), userID, id, &input)
		return basehdl.HandleResponse(c, nil, err)
	})
}

// HandleWatchHistory trả về lịch sử xem của người dùng, mới nhất trước
func (h *MediaHandler) HandleWatchHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.WatchHistory(c.Context(), userID, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleFavorites trả về các media đã lưu yêu thích của người dùng
func (h *MediaHandler) HandleFavorites(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.Favorites(c.Context(), userID, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}
