package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ashwinyue/chatbot-support/internal/database"
	"github.com/ashwinyue/chatbot-support/internal/model"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open database")

	// 内存库每个连接各自独立，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.GetMigrator(db).Migrate(), "failed to migrate database")

	return NewRepositories(db)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repos := newTestRepos(t)

	first := &model.User{Username: "alice", PasswordHash: "hash-1"}
	require.NoError(t, repos.User.CreateUser(first))
	assert.NotZero(t, first.ID)

	second := &model.User{Username: "alice", PasswordHash: "hash-2"}
	err := repos.User.CreateUser(second)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// 唯一索引保证只有一条记录
	var count int64
	repos.DB.Model(&model.User{}).Where("username = ?", "alice").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetUserByUsername(t *testing.T) {
	repos := newTestRepos(t)

	user := &model.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, repos.User.CreateUser(user))

	found, err := repos.User.GetUserByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
	assert.False(t, found.CreatedAt.IsZero())

	_, err = repos.User.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMessageRejectsUnknownRole(t *testing.T) {
	repos := newTestRepos(t)

	user := &model.User{Username: "carol", PasswordHash: "hash"}
	require.NoError(t, repos.User.CreateUser(user))

	err := repos.Message.CreateMessage(&model.Message{
		UserID:  user.ID,
		Role:    model.Role("system"),
		Content: "nope",
	})
	assert.Error(t, err)

	// 存储层的 CHECK 约束兜底，绕过仓库直接写也会被拒绝
	err = repos.DB.Exec(
		"INSERT INTO messages (user_id, role, content, created_at) VALUES (?, 'system', 'nope', CURRENT_TIMESTAMP)",
		user.ID,
	).Error
	assert.Error(t, err)
}

func TestMessagesOrderedByCreation(t *testing.T) {
	repos := newTestRepos(t)

	user := &model.User{Username: "dave", PasswordHash: "hash"}
	require.NoError(t, repos.User.CreateUser(user))

	contents := []string{"one", "two", "three", "four"}
	roles := []model.Role{model.RoleUser, model.RoleAssistant, model.RoleUser, model.RoleAssistant}
	for i := range contents {
		require.NoError(t, repos.Message.CreateMessage(&model.Message{
			UserID:  user.ID,
			Role:    roles[i],
			Content: contents[i],
		}))
	}

	messages, err := repos.Message.GetMessagesByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	for i, msg := range messages {
		assert.Equal(t, contents[i], msg.Content)
		assert.Equal(t, roles[i], msg.Role)
	}
}

func TestDeleteUserCascadesMessages(t *testing.T) {
	repos := newTestRepos(t)

	user := &model.User{Username: "erin", PasswordHash: "hash"}
	require.NoError(t, repos.User.CreateUser(user))
	other := &model.User{Username: "frank", PasswordHash: "hash"}
	require.NoError(t, repos.User.CreateUser(other))

	for _, u := range []*model.User{user, other} {
		require.NoError(t, repos.Message.CreateMessage(&model.Message{
			UserID: u.ID, Role: model.RoleUser, Content: "hi",
		}))
		require.NoError(t, repos.Message.CreateMessage(&model.Message{
			UserID: u.ID, Role: model.RoleAssistant, Content: "hello",
		}))
	}

	require.NoError(t, repos.User.DeleteUser(user.ID))

	_, err := repos.User.GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repos.Message.CountMessagesByUserID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 其他用户的消息不受影响
	count, err = repos.Message.CountMessagesByUserID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
