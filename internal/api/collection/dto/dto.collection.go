// Package dto - các DTO request thuộc domain collection.
package dto

// CreateCollectionInput là dữ liệu tạo danh sách phát mới
type CreateCollectionInput struct {
	Title       string `json:"title" validate:"required,min=1,max=128"`
	Description string `json:"description" validate:"max=1000"`
	Visibility  string `json:"visibility" validate:"required,oneof=public private unlisted"`
}

// UpdateCollectionInput là dữ liệu cập nhật danh sách phát.
// Các trường nil giữ nguyên giá trị hiện tại.
type UpdateCollectionInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Visibility  *string `json:"visibility" validate:"omitempty,oneof=public private unlisted"`
}

// AddItemInput là dữ liệu thêm một media vào danh sách phát
type AddItemInput struct {
	MediaID string `json:"mediaId" validate:"required"`
}

// MoveItemInput là dữ liệu di chuyển một mục tới vị trí mới
type MoveItemInput struct {
	MediaID     string `json:"mediaId" validate:"required"`
	NewPosition int64  `json:"newPosition" validate:"required,min=1"`
}
