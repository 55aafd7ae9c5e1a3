// Package dto - các DTO request thuộc domain report.
package dto

// CreateReportInput là dữ liệu gửi một báo cáo vi phạm
type CreateReportInput struct {
	SubjectKind string `json:"subjectKind" validate:"required,oneof=media comment identity"`
	SubjectID   string `json:"subjectId" validate:"required"`
	ReasonCode  string `json:"reasonCode" validate:"required,oneof=spam abuse copyright sexual violence other"`
	Description string `json:"description" validate:"max=2000"`
}

// ResolveReportInput là dữ liệu xử lý một báo cáo
type ResolveReportInput struct {
	Action      string `json:"action" validate:"required,oneof=resolved ignored"`
	HideSubject bool   `json:"hideSubject"`
}
