package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ashwinyue/chatbot-support/internal/model"
	"github.com/ashwinyue/chatbot-support/internal/service/completion"
)

// 固定回复文案
// 占位回复用于未接入模型的部署，降级回复用于模型调用失败
const (
	PlaceholderReply = "Demo reply (no AI model is connected)"
	EmptyModelReply  = "The AI model did not return a reply"
	DegradedReply    = "The AI assistant is temporarily unavailable, please try again later"
)

// ErrEmptyMessage 消息去除首尾空白后为空
var ErrEmptyMessage = errors.New("message must not be empty")

// MessageStore 消息存取接口
// 接口定义使 Service 层可以轻松 mock 进行单元测试
type MessageStore interface {
	CreateMessage(msg *model.Message) error
	GetMessagesByUserID(userID uint) ([]*model.Message, error)
}

// Service 聊天服务
// 一轮对话 = 一条 user 消息加一条 assistant 消息，按此顺序落库
type Service struct {
	messages  MessageStore
	completer completion.Completer
}

// NewService 创建聊天服务
// completer 可以为 nil，此时回复固定占位文案
func NewService(messages MessageStore, completer completion.Completer) *Service {
	return &Service{messages: messages, completer: completer}
}

// SendMessage 处理一轮对话
// 用户消息先落库，落库失败直接终止本轮；补全失败不向上抛，
// 转为降级回复，保证每条用户消息都有对应的 assistant 消息
func (s *Service) SendMessage(ctx context.Context, userID uint, rawMessage string) (string, error) {
	text := strings.TrimSpace(rawMessage)
	if text == "" {
		return "", ErrEmptyMessage
	}

	userMsg := &model.Message{
		UserID:  userID,
		Role:    model.RoleUser,
		Content: text,
	}
	if err := s.messages.CreateMessage(userMsg); err != nil {
		return "", fmt.Errorf("failed to store user message: %w", err)
	}

	reply := s.complete(ctx, text)

	assistantMsg := &model.Message{
		UserID:  userID,
		Role:    model.RoleAssistant,
		Content: reply,
	}
	if err := s.messages.CreateMessage(assistantMsg); err != nil {
		return "", fmt.Errorf("failed to store assistant message: %w", err)
	}

	return reply, nil
}

// GetHistory 按创建顺序获取用户自己的消息
func (s *Service) GetHistory(ctx context.Context, userID uint) ([]*model.Message, error) {
	return s.messages.GetMessagesByUserID(userID)
}

// complete 调用补全模型，任何失败都折叠为固定回复
func (s *Service) complete(ctx context.Context, prompt string) string {
	if s.completer == nil {
		return PlaceholderReply
	}

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		// 失败细节只进日志，不进对外回复
		log.Printf("completion failed: %v", err)
		if errors.Is(err, completion.ErrEmptyReply) {
			return EmptyModelReply
		}
		return DegradedReply
	}

	return reply
}
