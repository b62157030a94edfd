package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"roommate_finder/internal/api"
	"roommate_finder/internal/models"
	"roommate_finder/internal/repository"
	"roommate_finder/internal/service"
	"roommate_finder/internal/storage"
	"roommate_finder/pkg/config"
	"roommate_finder/pkg/utils"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.ListingInterest{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db.DB)
	services := service.NewServices(repos)

	// JWT 簽發器由配置建構，密鑰不寫死在程式碼裡
	tokenMaker := utils.NewTokenMaker(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, tokenMaker)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
