package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"atom_video/internal/global"
	"atom_video/internal/logger"
	"atom_video/internal/utility"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := ":" + cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, store, validator)
	InitGlobal()

	// Khởi tạo dữ liệu mặc định nếu đang ở chế độ INITMODE.
	// Seed chỉ là tiện ích phát triển nên panic trong lúc seed không được
	// phép kéo sập server.
	if global.ServerConfig.InitMode {
		utility.GoProtect(InitDefaultData)
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
