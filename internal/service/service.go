package service

import (
	"context"
	"log"

	"github.com/ashwinyue/chatbot-support/internal/config"
	"github.com/ashwinyue/chatbot-support/internal/repository"
	"github.com/ashwinyue/chatbot-support/internal/service/auth"
	"github.com/ashwinyue/chatbot-support/internal/service/chat"
	"github.com/ashwinyue/chatbot-support/internal/service/completion"
)

// Services 服务集合
type Services struct {
	Auth *auth.Service
	Chat *chat.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	// 创建补全器，未配置 APIKey 时为 nil，聊天服务走占位回复
	var completer completion.Completer
	openAICompleter, err := completion.NewOpenAICompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if openAICompleter != nil {
		completer = openAICompleter
		log.Printf("Completion model ready: %s", cfg.AI.OpenAI.Model)
	} else {
		log.Printf("No completion model configured, chat will return placeholder replies")
	}

	return &Services{
		Auth:   auth.NewService(repo, cfg.JWT.Secret, cfg.JWT.ExpireHours),
		Chat:   chat.NewService(repo.Message, completer),
		Config: cfg,
	}, nil
}
