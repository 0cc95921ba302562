package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/chatbot-support/internal/repository"
	"github.com/ashwinyue/chatbot-support/internal/service"
	"github.com/ashwinyue/chatbot-support/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			BadRequest(c, err.Error())
		case errors.Is(err, repository.ErrDuplicateUsername):
			Conflict(c, "username already taken")
		default:
			log.Printf("register failed: %v", err)
			InternalServerError(c)
		}
		return
	}

	Created(c, user)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			Unauthorized(c, "wrong credentials")
		default:
			log.Printf("login failed: %v", err)
			InternalServerError(c)
		}
		return
	}

	Success(c, resp)
}
