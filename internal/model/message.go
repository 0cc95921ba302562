package model

import "time"

// Role 消息角色，仅允许 user / assistant 两个值
// 除类型层面外，存储层还通过 CHECK 约束强制该枚举
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message 聊天消息，按创建顺序追加，不提供更新/删除
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Role      Role      `gorm:"size:20;not null;check:role IN ('user','assistant')" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
