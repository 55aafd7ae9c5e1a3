// Package dto - các DTO request thuộc domain media.
package dto

// CreateMediaInput là dữ liệu đăng media mới.
// Media mới luôn ở trạng thái draft cho tới khi phát hành.
type CreateMediaInput struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     string   `json:"description" validate:"max=5000"`
	Category        string   `json:"category" validate:"required,min=1,max=64"`
	Tags            []string `json:"tags" validate:"max=20,dive,min=1,max=32"`
	PlaybackURL     string   `json:"playbackUrl" validate:"required,url"`
	ThumbnailURL    string   `json:"thumbnailUrl" validate:"omitempty,url"`
	DurationSeconds float64  `json:"durationSeconds" validate:"omitempty,gte=0"`
	Visibility      string   `json:"visibility" validate:"required,oneof=public private unlisted"`
}

// UpdateMediaInput là dữ liệu cập nhật media; trường nil giữ nguyên
type UpdateMediaInput struct {
	Title        *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description" validate:"omitempty,max=5000"`
	Category     *string   `json:"category" validate:"omitempty,min=1,max=64"`
	Tags         *[]string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=32"`
	ThumbnailURL *string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Visibility   *string   `json:"visibility" validate:"omitempty,oneof=public private unlisted"`
}

// UpdateProgressInput là dữ liệu cập nhật vị trí đang xem dở
type UpdateProgressInput struct {
	PositionSeconds float64 `json:"positionSeconds" validate:"gte=0"`
	DurationSeconds float64 `json:"durationSeconds" validate:"gt=0"`
}
