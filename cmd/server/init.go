package main

import (
	"github.com/sirupsen/logrus"

	"atom_video/config"
	authsvc "atom_video/internal/api/auth/service"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
	"atom_video/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initConfig()    // Khởi tạo cấu hình server
	initStore()     // Khởi tạo kho dữ liệu trong bộ nhớ
	initValidator() // Khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
	logrus.Debugf("Cấu hình hiệu lực: %s", utility.PrettyPrint(global.ServerConfig))
}

// Hàm khởi tạo kho dữ liệu trong bộ nhớ.
// Session registry được gắn với liveness của user: token chỉ còn hiệu lực
// khi user tương ứng vẫn tồn tại và đang active.
func initStore() {
	global.Store = memstore.NewStore()
	global.Store.BindSessions(authsvc.IsUserActive)
	memstore.SetMaxPageLimit(int64(global.ServerConfig.PageLimitMax))
	logrus.Info("Initialized in-memory store") // Ghi log thông báo đã khởi tạo store
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}
