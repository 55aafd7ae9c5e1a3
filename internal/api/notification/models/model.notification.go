// Package models - model thông báo thuộc domain notification.
package models

import (
	"atom_video/internal/memstore"
)

// Các loại thông báo
const (
	CategorySubscribe = "subscribe" // Có người đăng ký kênh
	CategoryComment   = "comment"   // Có bình luận mới trên media
	CategorySystem    = "system"    // Thông báo hệ thống
)

// Notification là một thông báo gửi tới một người dùng
type Notification struct {
	memstore.Base
	RecipientID string `json:"recipientId"` // Người nhận
	Category    string `json:"category"`    // Loại thông báo
	Title       string `json:"title"`       // Tiêu đề
	Message     string `json:"message"`     // Nội dung
	Read        bool   `json:"read"`        // Đã đọc chưa
	RelatedID   string `json:"relatedId"`   // ID đối tượng liên quan
	RelatedURL  string `json:"relatedUrl"`  // Đường dẫn tới đối tượng trên frontend
}
