package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/chatbot-support/internal/model"
	"github.com/ashwinyue/chatbot-support/internal/repository"
)

// insecureDefaultSecret 未配置密钥时的内置默认值
// 仅供本地开发，生产环境必须通过配置注入真实密钥
const insecureDefaultSecret = "dev_secret"

var (
	// ErrInvalidInput 用户名或密码为空
	ErrInvalidInput = errors.New("username and password are required")
	// ErrInvalidCredentials 登录失败，不区分用户不存在和密码错误
	ErrInvalidCredentials = errors.New("wrong credentials")
	// ErrInvalidToken 令牌校验失败，对调用方不暴露具体原因
	ErrInvalidToken = errors.New("invalid token")
)

// Identity 令牌携带的身份信息
type Identity struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
}

// Service 认证服务
type Service struct {
	repo        *repository.Repositories
	secret      []byte
	tokenExpiry time.Duration
}

// NewService 创建认证服务
// 密钥显式注入，保持组件可独立测试
func NewService(repo *repository.Repositories, secret string, expireHours int) *Service {
	if secret == "" {
		log.Printf("WARNING: jwt.secret is not configured, falling back to the built-in development secret; tokens are NOT secure")
		secret = insecureDefaultSecret
	}
	if expireHours <= 0 {
		expireHours = 2
	}
	return &Service{
		repo:        repo,
		secret:      []byte(secret),
		tokenExpiry: time.Duration(expireHours) * time.Hour,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string          `json:"token"`
	User  *model.UserInfo `json:"user"`
}

// Register 注册用户
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.UserInfo, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// 哈希密码，明文不落库不打日志
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.User.CreateUser(user); err != nil {
		return nil, err
	}

	return user.ToUserInfo(), nil
}

// Login 用户登录
// 用户不存在和密码错误返回同一个错误，避免用户名枚举
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.User.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToUserInfo(),
	}, nil
}

// IssueToken 签发令牌
func (s *Service) IssueToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken 校验令牌
// 签名、过期、结构错误统一折叠为 ErrInvalidToken，具体原因通过包装保留给日志
func (s *Service) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return nil, fmt.Errorf("%w: missing user id claim", ErrInvalidToken)
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: missing username claim", ErrInvalidToken)
	}

	return &Identity{UserID: uint(id), Username: username}, nil
}
