// Package dto - các DTO request thuộc domain comment.
package dto

// AddCommentInput là dữ liệu viết bình luận mới.
// ParentID khác rỗng tạo trả lời cho một bình luận gốc; chỉ một cấp.
type AddCommentInput struct {
	Text     string `json:"text" validate:"required,min=1,max=2000"`
	ParentID string `json:"parentId"`
}
