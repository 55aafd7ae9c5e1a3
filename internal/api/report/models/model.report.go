// Package models - model báo cáo vi phạm thuộc domain report.
package models

import (
	"atom_video/internal/memstore"
)

// Loại đối tượng bị báo cáo
const (
	SubjectMedia    = "media"
	SubjectComment  = "comment"
	SubjectIdentity = "identity"
)

// Trạng thái xử lý báo cáo
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusIgnored  = "ignored"
)

// Report là một báo cáo vi phạm do người dùng gửi lên
type Report struct {
	memstore.Base
	SubjectKind string `json:"subjectKind"` // media | comment | identity
	SubjectID   string `json:"subjectId"`   // ID đối tượng bị báo cáo
	ReporterID  string `json:"reporterId"`  // Người báo cáo
	ReasonCode  string `json:"reasonCode"`  // Mã lý do
	Description string `json:"description"` // Mô tả thêm
	Status      string `json:"status"`      // pending | resolved | ignored
	ResolvedBy  string `json:"resolvedBy"`  // Admin đã xử lý, rỗng khi pending
}
