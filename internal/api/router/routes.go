// Package router - hạ tầng định tuyến chung cho các domain router.
package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{app: app}
}

// RegisterRouteWithMiddleware đăng ký route với middleware theo đúng chữ
// ký Fiber v3: router.Get(path, handler, middleware...) với middleware đứng
// SAU handler (ngược thứ tự v2, viết kiểu v2 thì middleware không được gọi).
//
// Không dùng Group(prefix).Use(mw): trong Fiber v3 .Use() trên group đăng
// ký middleware theo prefix cho MỌI route match prefix đó về sau, nên
// middleware auth của một route sẽ lan sang các route công khai cùng
// prefix. Helper này gắn middleware cho đúng một route.
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(v1, "/auth", "GET", "/profile", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	full := prefix + path
	// StrictRouting đang bật nên "/x/" và "/x" là hai route khác nhau;
	// chuẩn hóa bỏ "/" cuối để path "/" của prefix trỏ về chính prefix.
	if len(full) > 1 {
		full = strings.TrimSuffix(full, "/")
	}

	switch method {
	case "GET":
		router.Get(full, handler, middlewares...)
	case "POST":
		router.Post(full, handler, middlewares...)
	case "PUT":
		router.Put(full, handler, middlewares...)
	case "DELETE":
		router.Delete(full, handler, middlewares...)
	}
}
