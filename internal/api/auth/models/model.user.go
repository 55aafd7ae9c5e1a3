// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"atom_video/internal/memstore"
)

// Vai trò của người dùng
const (
	RoleMember  = "member"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Trạng thái tài khoản
const (
	StatusActive     = "active"
	StatusDisabled   = "disabled"
	StatusUnverified = "unverified"
)

// User định nghĩa mô hình người dùng.
// PasswordHash không bao giờ được serialize ra ngoài; mọi projection công
// khai đi qua Public().
type User struct {
	memstore.Base
	Handle           string       `json:"handle"`      // Tên định danh duy nhất, không phân biệt hoa thường
	Email            string       `json:"email"`       // Email duy nhất, không phân biệt hoa thường
	PasswordHash     string       `json:"-"`           // Bcrypt hash của mật khẩu
	DisplayName      string       `json:"displayName"` // Tên hiển thị
	AvatarURL        string       `json:"avatarUrl"`   // Ảnh đại diện
	Bio              string       `json:"bio"`         // Giới thiệu kênh
	Verified         bool         `json:"verified"`    // Kênh đã xác minh
	Role             string       `json:"role"`        // member | creator | admin
	Status           string       `json:"status"`      // active | disabled | unverified
	SubscriberCount  int64        `json:"subscriberCount"`  // Số người đăng ký kênh này
	SubscribingCount int64        `json:"subscribingCount"` // Số kênh người này đăng ký
	TotalViews       int64        `json:"totalViews"`       // Tổng lượt xem trên mọi media của kênh
	MediaCount       int64        `json:"mediaCount"`       // Số media đã đăng
	LikedMediaIDs    []string     `json:"likedMediaIds"`    // Tập media đã thích
	DislikedMediaIDs []string     `json:"dislikedMediaIds"` // Tập media đã không thích
	FavoriteMediaIDs []string     `json:"favoriteMediaIds"` // Tập media đã lưu yêu thích
	FollowingIDs     []string     `json:"followingIds"`     // Tập kênh đang đăng ký
	WatchHistory     []WatchEntry `json:"watchHistory"` // Lịch sử xem, mới nhất cuối
	LastLoginAt      memstore.Timestamp `json:"lastLoginAt"` // Thời điểm đăng nhập gần nhất
}

// WatchEntry là một mục trong lịch sử xem của người dùng
type WatchEntry struct {
	MediaID         string             `json:"mediaId"`   // Media đã xem
	WatchedAt       memstore.Timestamp `json:"watchedAt"` // Thời điểm xem gần nhất
	PositionSeconds float64 `json:"positionSeconds"` // Vị trí đang xem dở
	DurationSeconds float64 `json:"durationSeconds"` // Thời lượng media tại thời điểm xem
	Progress        float64 `json:"progress"`        // Tỷ lệ đã xem [0, 1]
}

// PublicUser là projection công khai của người dùng: chỉ các trường an
// toàn để gắn vào media, bình luận và kết quả tìm kiếm.
type PublicUser struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	Verified    bool   `json:"verified"`
}

// Public trả về projection công khai của user
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.GetID(),
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Verified:    u.Verified,
	}
}
