// Package basehdl cung cấp base handler generic và các tiện ích xử lý
// request/response dùng chung cho mọi domain handler.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/go-playground/validator/v10"

	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8.
// Helper này đảm bảo mọi response đều có charset=utf-8 để hỗ trợ tiếng Việt.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Format response thống nhất trong toàn bộ ứng dụng:
// thành công: {code, message, data, status: "success"}
// thất bại:   {code, message, details, status: "error"}
//
// Parameters:
//   - c: Fiber context
//   - data: Dữ liệu trả về cho client (nil nếu chỉ trả về lỗi)
//   - err: Lỗi nếu có (nil nếu không có lỗi)
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		// Lỗi không phải custom error: trả về internal server error
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover để bắt panic và trả về response an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
//
// Parameters:
//   - c: Fiber context
//   - handler: Function xử lý chính của handler
func SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// ParseRequestBody parse request body JSON vào DTO
func ParseRequestBody(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().Body(out); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			nil,
		)
	}
	return nil
}

// ValidateInput validate DTO theo struct tag `validate`
func ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fmt.Sprintf("%s: không thỏa điều kiện '%s'", fe.Field(), fe.Tag()))
			}
			return common.NewError(
				common.ErrCodeValidationInput,
				common.MsgValidationError,
				common.StatusBadRequest,
				details,
			)
		}
		return common.ErrInvalidInput
	}
	return nil
}

// ParsePagination đọc page, limit, sortBy, sortDir từ query params.
// Giá trị thiếu hoặc không parse được lặng lẽ về mặc định; đây là tham số
// hiển thị, không phải tham số định danh record.
//
// Parameters:
//   - c: Fiber context
//
// Returns:
//   - page: Trang cần lấy (mặc định 1)
//   - limit: Kích thước trang (mặc định memstore.DefaultPageLimit)
//   - sort: Thứ tự sắp xếp (mặc định createdAt giảm dần)
func ParsePagination(c fiber.Ctx) (page, limit int64, sort memstore.Sort) {
	page = 1
	limit = memstore.DefaultPageLimit
	if v, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}

	sort = memstore.DefaultSort()
	if field := c.Query("sortBy"); field != "" {
		sort = memstore.Sort{Field: field, Desc: c.Query("sortDir", "desc") != "asc"}
	}
	return page, limit, sort
}

// RequireParam đọc path param bắt buộc; rỗng là lỗi validation cứng vì
// param định danh record không được phép lặng lẽ về mặc định.
func RequireParam(c fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		return "", common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Thiếu tham số bắt buộc: %s", name),
			common.StatusBadRequest,
			nil,
		)
	}
	return value, nil
}

// UserIDFromContext lấy ID của user đã xác thực từ context.
// Middleware auth lưu user_id vào Locals sau khi resolve token.
func UserIDFromContext(c fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", common.ErrTokenMissing
	}
	return userID, nil
}

// OptionalUserIDFromContext lấy ID của user nếu đã xác thực, rỗng nếu chưa.
// Dùng cho các endpoint đọc công khai có projection phụ thuộc người xem.
func OptionalUserIDFromContext(c fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
