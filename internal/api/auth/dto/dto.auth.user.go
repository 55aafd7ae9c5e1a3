// Package dto - các DTO request/response thuộc domain auth.
package dto

// RegisterInput là dữ liệu đăng ký tài khoản mới
type RegisterInput struct {
	Handle      string `json:"handle" validate:"required,min=3,max=32,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=64"`
}

// LoginInput là dữ liệu đăng nhập.
// Login nhận handle hoặc email.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput là dữ liệu cập nhật hồ sơ.
// Các trường nil giữ nguyên giá trị hiện tại.
type UpdateProfileInput struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=64"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,url"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
}

// ChangePasswordInput là dữ liệu đổi mật khẩu
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// LoginResult là kết quả đăng nhập trả về cho client
type LoginResult struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
