// Package completion 封装外部补全模型调用
// 聊天服务只依赖 Completer 接口，便于单测替换
package completion

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ashwinyue/chatbot-support/internal/config"
)

// ErrEmptyReply 模型返回了空内容
var ErrEmptyReply = errors.New("completion model returned no content")

// Completer 补全模型契约：单条提示词换一条回复
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter 基于 eino OpenAI ChatModel 的实现
type OpenAICompleter struct {
	chatModel ecomodel.BaseChatModel
	timeout   time.Duration
}

// NewOpenAICompleter 创建补全器
// 未配置 APIKey 时返回 nil，调用方走占位回复路径
func NewOpenAICompleter(ctx context.Context, cfg *config.Config) (*OpenAICompleter, error) {
	aiCfg := cfg.AI.OpenAI
	if aiCfg.APIKey == "" {
		return nil, nil
	}

	modelName := aiCfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  aiCfg.APIKey,
		BaseURL: aiCfg.BaseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(aiCfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAICompleter{chatModel: chatModel, timeout: timeout}, nil
}

// Complete 调用补全模型
// 外部调用挂起会拖住请求，这里统一加超时，超时按普通失败处理
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", ErrEmptyReply
	}

	return resp.Content, nil
}
