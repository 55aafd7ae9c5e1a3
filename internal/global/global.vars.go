// Package global chứa các biến toàn cục của ứng dụng: cấu hình server,
// store dữ liệu trong bộ nhớ và validator. Các biến này được khởi tạo
// một lần khi server start, trong cmd/server/init.go.
package global

import (
	"github.com/go-playground/validator/v10"

	"atom_video/config"
	"atom_video/internal/memstore"
)

var (
	// ServerConfig là cấu hình đọc từ biến môi trường khi start
	ServerConfig *config.Configuration

	// Store là kho dữ liệu trong bộ nhớ, dùng chung cho mọi service
	Store *memstore.Store

	// Validate là validator instance dùng chung cho DTO
	Validate *validator.Validate
)

// tableNames liệt kê tên các bảng trong store. Service lấy bảng qua các
// tên này để mọi nơi cùng trỏ về một bảng duy nhất.
type tableNames struct {
	AuthUsers       string
	MediaItems      string
	MediaComments   string
	Collections     string
	CollectionItems string
	Reports         string
	ActivityLogs    string
	LedgerEntries   string
	Notifications   string
}

// TableNames là danh sách tên bảng chuẩn của ứng dụng
var TableNames = tableNames{
	AuthUsers:       "auth_users",
	MediaItems:      "media_items",
	MediaComments:   "media_comments",
	Collections:     "collections",
	CollectionItems: "collection_items",
	Reports:         "reports",
	ActivityLogs:    "activity_logs",
	LedgerEntries:   "ledger_entries",
	Notifications:   "notifications",
}

// idPrefixes liệt kê tiền tố ID của record từng bảng
type idPrefixes struct {
	User           string
	Media          string
	Comment        string
	Collection     string
	CollectionItem string
	Report         string
	Activity       string
	Ledger         string
	Notification   string
}

// IDPrefixes là tiền tố ID chuẩn của ứng dụng
var IDPrefixes = idPrefixes{
	User:           "usr",
	Media:          "vid",
	Comment:        "cmt",
	Collection:     "col",
	CollectionItem: "cli",
	Report:         "rpt",
	Activity:       "act",
	Ledger:         "led",
	Notification:   "ntf",
}
