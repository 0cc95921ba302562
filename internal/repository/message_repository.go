package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/chatbot-support/internal/model"
)

// MessageRepository 消息数据访问
// 消息只追加，不提供更新和删除
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage 追加消息
func (r *MessageRepository) CreateMessage(msg *model.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("invalid message role: %s", msg.Role)
	}
	return r.db.Create(msg).Error
}

// GetMessagesByUserID 按创建顺序获取用户的全部消息
func (r *MessageRepository) GetMessagesByUserID(userID uint) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&messages).Error
	return messages, err
}

// CountMessagesByUserID 统计用户消息数
func (r *MessageRepository) CountMessagesByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
