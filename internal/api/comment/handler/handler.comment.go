// Package commenthdl - handler cho các route bình luận.
package commenthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/comment/dto"
	commentsvc "atom_video/internal/api/comment/service"
)

// CommentHandler xử lý các route bình luận trên media
type CommentHandler struct {
	service *commentsvc.CommentService
}

// NewCommentHandler tạo một instance mới của CommentHandler
func NewCommentHandler() *CommentHandler {
	return &CommentHandler{service: commentsvc.NewCommentService()}
}

// HandleAdd viết bình luận mới trên media trong path param
func (h *CommentHandler) HandleAdd(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		mediaID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.AddCommentInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		comment, err := h.service.Add(c.Context(), userID, mediaID, input.Text, input.ParentID)
		return basehdl.HandleResponse(c, comment, err)
	})
}

// HandleList trả về bình luận của media theo thread một cấp
func (h *CommentHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		mediaID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindForMedia(c.Context(), mediaID, basehdl.OptionalUserIDFromContext(c), page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleToggleLike đảo trạng thái thích bình luận
func (h *CommentHandler) HandleToggleLike(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		commentID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		liked, err := h.service.ToggleLike(c.Context(), userID, commentID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"isLiked": liked}, nil)
	})
}

// HandleDelete xóa bình luận; tác giả hoặc chủ media
func (h *CommentHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		commentID, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.service.Delete(c.Context(), commentID, userID)
		return basehdl.HandleResponse(c, nil, err)
	})
}
