package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roommate_finder/internal/api/handlers"
	"roommate_finder/internal/middleware"
	"roommate_finder/internal/service"
	"roommate_finder/pkg/utils"
)

func SetupRoutes(r *gin.Engine, services *service.Services, tokenMaker *utils.TokenMaker) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User, tokenMaker)
	listingHandler := handlers.NewListingHandler(services.Listing)
	messageHandler := handlers.NewMessageHandler(services.Message, services.Conversation)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// 刊登搜尋與詳細頁不需要登入
		api.GET("/listings", listingHandler.Search)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Server is healthy",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(tokenMaker))
	{
		// 個人資料相關
		auth := authorized.Group("/auth")
		{
			auth.GET("/profile", authHandler.Profile)
			auth.PUT("/profile/update", authHandler.UpdateProfile)
			auth.GET("/logout", authHandler.Logout)
		}

		// 房源刊登相關
		listings := authorized.Group("/listings")
		{
			// 固定路徑要先註冊，動態 :id 的在後
			listings.POST("/create", listingHandler.Create)
			listings.GET("/my-listings", listingHandler.MyListings)

			// 擁有者限定的操作
			listings.PUT("/:id", listingHandler.Update)
			listings.DELETE("/:id", listingHandler.Delete)

			// 切換興趣
			listings.POST("/:id/interest", listingHandler.ToggleInterest)
		}

		// 站內訊息相關
		messages := authorized.Group("/messages")
		{
			messages.POST("/send", messageHandler.Send)
			messages.GET("/conversations", messageHandler.Conversations)
			messages.GET("/conversation/:conversationId", messageHandler.Messages)
			messages.GET("/unread-count", messageHandler.UnreadCount)
			messages.DELETE("/:messageId", messageHandler.Delete)
		}
	}

	// 刊登詳細頁放在最後，避免和 my-listings 之類的固定路徑衝突
	api.GET("/listings/:id", listingHandler.Get)
}
