// Package models - model nội dung video (MediaItem) thuộc domain media.
package models

import (
	"atom_video/internal/memstore"
)

// Trạng thái vòng đời của media
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// Chế độ hiển thị của media
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityUnlisted = "unlisted"
)

// MediaItem định nghĩa mô hình một video trên nền tảng.
// Các counter là giá trị denormalize từ các bảng/tập liên quan và được
// cập nhật trong cùng thao tác làm thay đổi chúng.
type MediaItem struct {
	memstore.Base
	Title           string   `json:"title"`           // Tiêu đề
	Description     string   `json:"description"`     // Mô tả
	OwnerID         string   `json:"ownerId"`         // Creator sở hữu
	Category        string   `json:"category"`        // Danh mục
	Tags            []string `json:"tags"`            // Tập tag, không trùng lặp
	Status          string   `json:"status"`          // draft | pending | published | rejected
	Visibility      string   `json:"visibility"`      // public | private | unlisted
	PlaybackURL     string   `json:"playbackUrl"`     // Đường dẫn phát
	ThumbnailURL    string   `json:"thumbnailUrl"`    // Ảnh bìa
	DurationSeconds float64  `json:"durationSeconds"` // Thời lượng, do transcoder báo về
	PublishedAt     *memstore.Timestamp `json:"publishedAt"` // Thời điểm phát hành, nil khi chưa phát hành
	ViewCount       int64    `json:"viewCount"`       // Số lượt xem
	LikeCount       int64    `json:"likeCount"`       // Số lượt thích
	DislikeCount    int64    `json:"dislikeCount"`    // Số lượt không thích
	FavoriteCount   int64    `json:"favoriteCount"`   // Số người lưu yêu thích
	CommentCount    int64    `json:"commentCount"`    // Số bình luận
}

// Snapshot là projection gọn của media để gắn vào danh sách phát,
// lịch sử xem và thông báo
type Snapshot struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	ThumbnailURL    string  `json:"thumbnailUrl"`
	DurationSeconds float64 `json:"durationSeconds"`
	Status          string  `json:"status"`
	OwnerID         string  `json:"ownerId"`
}

// ToSnapshot trả về projection gọn của media
func (m MediaItem) ToSnapshot() Snapshot {
	return Snapshot{
		ID:              m.GetID(),
		Title:           m.Title,
		ThumbnailURL:    m.ThumbnailURL,
		DurationSeconds: m.DurationSeconds,
		Status:          m.Status,
		OwnerID:         m.OwnerID,
	}
}
