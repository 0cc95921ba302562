package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/chatbot-support/internal/handler"
	"github.com/ashwinyue/chatbot-support/internal/middleware"
	"github.com/ashwinyue/chatbot-support/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证（公开）
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
		}

		// 聊天（需要 Bearer token）
		chatGroup := v1.Group("/chat")
		chatGroup.Use(middleware.RequireAuth(svc.Auth))
		{
			chatGroup.POST("", h.Chat.SendMessage)
			chatGroup.GET("/history", h.Chat.GetHistory)
		}
	}

	return r
}
