// Package models - model bình luận thuộc domain comment.
package models

import (
	"atom_video/internal/memstore"
)

// Trạng thái của bình luận
const (
	StatusNormal  = "normal"
	StatusHidden  = "hidden"
	StatusPending = "pending"
)

// Comment là một bình luận trên media.
// Threading chỉ một cấp: ParentID rỗng là bình luận gốc, khác rỗng trỏ
// tới một bình luận gốc; không có trả lời của trả lời.
type Comment struct {
	memstore.Base
	MediaID    string   `json:"mediaId"`    // Media được bình luận
	AuthorID   string   `json:"authorId"`   // Người viết
	ParentID   string   `json:"parentId"`   // Bình luận cha, rỗng nếu là gốc
	Text       string   `json:"text"`       // Nội dung
	Status     string   `json:"status"`     // normal | hidden | pending
	LikeCount  int64    `json:"likeCount"`  // Số lượt thích
	LikedByIDs []string `json:"likedByIds"` // Tập người đã thích, nguồn của LikeCount
}
