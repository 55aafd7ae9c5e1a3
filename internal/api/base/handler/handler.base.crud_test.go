package basehdl

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// noteRecord là model mẫu cho test base handler
type noteRecord struct {
	memstore.Base
	Title string `json:"title"`
}

type noteCreateInput struct {
	Title string `json:"title" validate:"required"`
}

type noteUpdateInput struct {
	Title string `json:"title" validate:"required"`
}

func newNoteApp(t *testing.T) (*fiber.App, *memstore.Table[noteRecord]) {
	t.Helper()
	global.InitValidator()

	table := memstore.NewTable[noteRecord]("test_notes", "nte")
	h := NewBaseHandler[noteRecord, noteCreateInput, noteUpdateInput](basesvc.NewBaseServiceMemory(table))
	h.ToModel = func(input *noteCreateInput) (noteRecord, error) {
		return noteRecord{Title: input.Title}, nil
	}
	h.ApplyUpdate = func(input *noteUpdateInput, model *noteRecord) error {
		model.Title = input.Title
		return nil
	}

	app := fiber.New()
	app.Post("/notes", h.InsertOne)
	app.Get("/notes", h.FindWithPagination)
	app.Get("/notes/count", h.Count)
	app.Get("/notes/:id", h.FindOneById)
	app.Put("/notes/:id", h.UpdateById)
	app.Delete("/notes/:id", h.DeleteById)
	return app, table
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestBaseHandlerInsertOne(t *testing.T) {
	app, table := newNoteApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/notes", `{"title":"ghi chú đầu tiên"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "success", envelope["status"])
	assert.Equal(t, int64(1), table.Count(nil), "record phải nằm trong bảng sau khi insert")
}

func TestBaseHandlerInsertOneValidatesInput(t *testing.T) {
	app, table := newNoteApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/notes", `{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "thiếu title phải bị validator chặn")
	assert.Equal(t, int64(0), table.Count(nil))
}

func TestBaseHandlerFindOneById(t *testing.T) {
	app, table := newNoteApp(t)
	seeded, err := table.InsertOne(noteRecord{Title: "đã có sẵn"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notes/"+seeded.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "data phải là object record")
	assert.Equal(t, "đã có sẵn", data["title"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/notes/nte_khongton_tai", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBaseHandlerUpdateAndDeleteById(t *testing.T) {
	app, table := newNoteApp(t)
	seeded, err := table.InsertOne(noteRecord{Title: "trước khi sửa"})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/notes/"+seeded.ID, `{"title":"sau khi sửa"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := table.FindOneByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "sau khi sửa", updated.Title)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/notes/"+seeded.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, table.Exists(seeded.ID))
}

func TestBaseHandlerFindWithPaginationAndCount(t *testing.T) {
	app, table := newNoteApp(t)
	for i := 0; i < 15; i++ {
		_, err := table.InsertOne(noteRecord{Title: "ghi chú"})
		require.NoError(t, err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notes?page=2&limit=10", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(15), data["total"])
	assert.Equal(t, float64(2), data["totalPage"])
	items, ok := data["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 5, "trang 2 với limit 10 trên 15 record còn 5 record")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/notes/count", nil))
	require.NoError(t, err)
	envelope = decodeEnvelope(t, resp)
	data, ok = envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(15), data["total"])
}
