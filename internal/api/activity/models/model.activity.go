// Package models - model nhật ký hoạt động thuộc domain activity.
package models

import (
	"atom_video/internal/memstore"
)

// Các loại đối tượng mà một hoạt động trỏ tới
const (
	TargetMedia      = "media"
	TargetComment    = "comment"
	TargetUser       = "user"
	TargetCollection = "collection"
	TargetReport     = "report"
)

// ActivityEntry ghi lại một hành động của người dùng lên một đối tượng.
// Bảng activity là append-only: không có thao tác sửa hay xóa;
// thời điểm hành động là CreatedAt của record.
type ActivityEntry struct {
	memstore.Base
	ActorID  string `json:"actorId"`  // Người thực hiện hành động
	Action   string `json:"action"`   // Tên hành động (ví dụ: media.like)
	Target   string `json:"target"`   // Loại đối tượng
	TargetID string `json:"targetId"` // ID của đối tượng
}
