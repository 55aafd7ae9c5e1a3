// Package mediahdl - handler cho các route media.
package mediahdl

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/media/dto"
	mediasvc "atom_video/internal/api/media/service"
)

// MediaHandler xử lý các route vòng đời, tìm kiếm và tương tác media
type MediaHandler struct {
	service *mediasvc.MediaService
}

// NewMediaHandler tạo một instance mới của MediaHandler
func NewMediaHandler() *MediaHandler {
	return &MediaHandler{service: mediasvc.NewMediaService()}
}

// ====================================
// VÒNG ĐỜI
// ====================================

// HandleCreate đăng media mới ở trạng thái draft
func (h *MediaHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.CreateMediaInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		media, err := h.service.Create(c.Context(), userID, &input)
		return basehdl.HandleResponse(c, media, err)
	})
}

// HandleUpdate cập nhật media của chủ sở hữu
func (h *MediaHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.UpdateMediaInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		media, err := h.service.Update(c.Context(), id, userID, &input)
		return basehdl.HandleResponse(c, media, err)
	})
}

// HandlePublish phát hành media
func (h *MediaHandler) HandlePublish(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		media, err := h.service.Publish(c.Context(), id, userID)
		return basehdl.HandleResponse(c, media, err)
	})
}

// HandleReject từ chối media; route này nằm sau middleware admin
func (h *MediaHandler) HandleReject(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		adminID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		media, err := h.service.Reject(c.Context(), id, adminID)
		return basehdl.HandleResponse(c, media, err)
	})
}

// HandleDelete xóa media cùng dữ liệu phụ thuộc
func (h *MediaHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.Delete(c.Context(), id, userID)
		return basehdl.HandleResponse(c, nil, err)
	})
}

// ====================================
// ĐỌC VÀ TÌM KIẾM
// ====================================

// HandleDetail trả về chi tiết media với projection theo người xem
func (h *MediaHandler) HandleDetail(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		view, err := h.service.Detail(c.Context(), id, basehdl.OptionalUserIDFromContext(c))
		return basehdl.HandleResponse(c, view, err)
	})
}

// HandleSearch tìm media public đã phát hành.
// Query params: q, category, tags (phân tách bằng dấu phẩy), sortBy,
// sortDir, page, limit.
func (h *MediaHandler) HandleSearch(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, limit, sort := basehdl.ParsePagination(c)
		var tags []string
		if raw := c.Query("tags"); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}
		data, err := h.service.Search(c.Context(), c.Query("q"), c.Query("category"), tags, sort, page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleListByOwner trả về media của một kênh
func (h *MediaHandler) HandleListByOwner(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		ownerID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindByOwner(c.Context(), ownerID, basehdl.OptionalUserIDFromContext(c), page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleListTags trả về mọi tag trên media đã phát hành
func (h *MediaHandler) HandleListTags(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tags, err := h.service.ListTags(c.Context())
		return basehdl.HandleResponse(c, tags, err)
	})
}
