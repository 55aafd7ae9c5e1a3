package global

import (
	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo validator instance dùng chung cho toàn ứng dụng.
// Gọi một lần khi server start.
func InitValidator() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}
