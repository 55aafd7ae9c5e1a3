// Package collectionhdl - handler cho các route danh sách phát.
package collectionhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/collection/dto"
	"atom_video/internal/api/collection/models"
	collectionsvc "atom_video/internal/api/collection/service"
)

// CollectionHandler xử lý các route danh sách phát
type CollectionHandler struct {
	service *collectionsvc.CollectionService
}

// NewCollectionHandler tạo một instance mới của CollectionHandler
func NewCollectionHandler() *CollectionHandler {
	return &CollectionHandler{service: collectionsvc.NewCollectionService()}
}

// HandleCreate tạo danh sách phát mới
func (h *CollectionHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.CreateCollectionInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		col, err := h.service.Create(c.Context(), userID, input.Title, input.Description, input.Visibility)
		return basehdl.HandleResponse(c, col, err)
	})
}

// HandleUpdate cập nhật thông tin danh sách phát
func (h *CollectionHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.UpdateCollectionInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		col, err := h.service.Update(c.Context(), id, userID, func(col *models.Collection) error {
			if input.Title != nil {
				col.Title = *input.Title
			}
			if input.Description != nil {
				col.Description = *input.Description
			}
			if input.Visibility != nil {
				col.Visibility = *input.Visibility
			}
			return nil
		})
		return basehdl.HandleResponse(c, col, err)
	})
}

// HandleDelete xóa danh sách phát cùng mọi mục bên trong
func (h *CollectionHandler) HandleDelete(c fiber.Ctx) error {
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

// HandleDetail trả về danh sách phát cùng các mục theo đúng thứ tự position
func (h *CollectionHandler) HandleDetail(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		viewerID := basehdl.OptionalUserIDFromContext(c)
		col, err := h.service.FindVisible(c.Context(), id, viewerID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		items, err := h.service.Items(c.Context(), id, viewerID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{
			"collection": col,
			"items":      items,
		}, nil)
	})
}

// HandleListByOwner trả về danh sách phát của một người dùng
func (h *CollectionHandler) HandleListByOwner(c fiber.Ctx) error {
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

// HandleAddItem thêm media vào cuối danh sách phát
func (h *CollectionHandler) HandleAddItem(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.AddItemInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		item, err := h.service.AddItem(c.Context(), id, userID, input.MediaID)
		return basehdl.HandleResponse(c, item, err)
	})
}

// HandleRemoveItem xóa media khỏi danh sách phát
func (h *CollectionHandler) HandleRemoveItem(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		mediaID, err := basehdl.RequireParam(c, "mediaId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.RemoveItem(c.Context(), id, userID, mediaID)
		return basehdl.HandleResponse(c, nil, err)
	})
}

// HandleMoveItem di chuyển một mục tới vị trí mới
func (h *CollectionHandler) HandleMoveItem(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.MoveItemInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.MoveItem(c.Context(), id, userID, input.MediaID, input.NewPosition)
		return basehdl.HandleResponse(c, nil, err)
	})
}
