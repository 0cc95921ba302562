package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/chatbot-support/internal/middleware"
	"github.com/ashwinyue/chatbot-support/internal/service"
	"github.com/ashwinyue/chatbot-support/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessage 发送消息并返回 assistant 回复
func (h *ChatHandler) SendMessage(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		Unauthorized(c, "no token")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	reply, err := h.svc.Chat.SendMessage(c.Request.Context(), identity.UserID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			BadRequest(c, "message must not be empty")
			return
		}
		log.Printf("chat turn failed for user %d: %v", identity.UserID, err)
		InternalServerError(c)
		return
	}

	Success(c, gin.H{"reply": reply})
}

// GetHistory 获取当前用户的消息历史
func (h *ChatHandler) GetHistory(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		Unauthorized(c, "no token")
		return
	}

	messages, err := h.svc.Chat.GetHistory(c.Request.Context(), identity.UserID)
	if err != nil {
		log.Printf("history fetch failed for user %d: %v", identity.UserID, err)
		InternalServerError(c)
		return
	}

	Success(c, gin.H{"messages": messages})
}
