// Package models - model danh sách phát (Collection) và mục trong danh sách.
package models

import (
	"atom_video/internal/memstore"
)

// Chế độ hiển thị của danh sách phát
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
)

// WatchLaterTitle là tiêu đề của danh sách phát hệ thống tạo sẵn cho mỗi
// người dùng khi đăng ký
const WatchLaterTitle = "Xem sau"

// Collection là một danh sách phát có thứ tự thuộc về một người dùng.
// Danh sách hệ thống (IsSystem) từ chối mọi thao tác ghi từ người gọi,
// kể cả thao tác trên mục.
type Collection struct {
	memstore.Base
	OwnerID     string `json:"ownerId"`     // Chủ sở hữu
	Title       string `json:"title"`       // Tiêu đề
	Description string `json:"description"` // Mô tả
	Visibility  string `json:"visibility"`  // public | private | unlisted
	ItemCount   int64  `json:"itemCount"`   // Số mục, luôn khớp số record item
	IsSystem    bool   `json:"isSystem"`    // Danh sách hệ thống
}

// CollectionItem là một mục trong danh sách phát.
// Position của các mục trong cùng một danh sách luôn là 1..N liên tục;
// mỗi media xuất hiện tối đa một lần trong một danh sách.
type CollectionItem struct {
	memstore.Base
	CollectionID string `json:"collectionId"` // Danh sách chứa mục
	MediaID      string `json:"mediaId"`      // Media của mục
	Position     int64  `json:"position"`     // Vị trí 1-based trong danh sách
}
