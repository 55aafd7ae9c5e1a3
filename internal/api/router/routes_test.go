package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanMoiRequest là middleware luôn từ chối, dùng để kiểm tra middleware
// có được gọi và có bị lan sang route khác hay không
func chanMoiRequest() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
}

func traOK(c fiber.Ctx) error {
	return c.SendString("ok")
}

func newTestApp() (*fiber.App, fiber.Router) {
	app := fiber.New(fiber.Config{StrictRouting: true, CaseSensitive: true})
	v1 := app.Group(NewRoutePrefix().V1)
	return app, v1
}

func TestMiddlewareDuocGoiTruocHandler(t *testing.T) {
	app, v1 := newTestApp()
	RegisterRouteWithMiddleware(v1, "/auth", "GET", "/profile", []fiber.Handler{chanMoiRequest()}, traOK)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"middleware của route phải chạy trước handler")
}

func TestMiddlewareKhongLanSangRouteCungPrefix(t *testing.T) {
	app, v1 := newTestApp()

	// Route ghi có middleware chặn và route đọc công khai cùng prefix
	RegisterRouteWithMiddleware(v1, "/media", "POST", "/", []fiber.Handler{chanMoiRequest()}, traOK)
	RegisterRouteWithMiddleware(v1, "/media", "GET", "/:id", nil, traOK)
	RegisterRouteWithMiddleware(v1, "/media", "GET", "/:id/comments", nil, traOK)

	for _, path := range []string{"/api/v1/media/vid_1", "/api/v1/media/vid_1/comments"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode,
			"route công khai %s không được dính middleware của route ghi cùng prefix", path)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/media", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"route ghi vẫn phải bị middleware của chính nó chặn")
}

func TestMiddlewareKhongLanSangMethodKhac(t *testing.T) {
	app, v1 := newTestApp()

	// Middleware admin của một route không được chặn method khác cùng path cha
	RegisterRouteWithMiddleware(v1, "/admin/reports", "POST", "/:id/resolve", []fiber.Handler{chanMoiRequest()}, traOK)
	RegisterRouteWithMiddleware(v1, "/media", "POST", "/:id/like", nil, traOK)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/media/vid_1/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPathGocCuaPrefixKhongCoSlashCuoi(t *testing.T) {
	app, v1 := newTestApp()
	RegisterRouteWithMiddleware(v1, "/me/ledger", "GET", "/", nil, traOK)

	// StrictRouting bật nên route phải nằm ở đúng /me/ledger
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/me/ledger", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}
