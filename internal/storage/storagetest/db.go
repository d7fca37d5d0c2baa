// Package storagetest 提供基于 sqlite 内存库的测试数据库。
package storagetest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ironmind/internal/models"
	"ironmind/internal/storage"
)

// Open 为当前测试创建一个独立的内存库并完成迁移。
// 连接池限制为 1，所有访问在同一个连接上串行执行，并发测试请使用 OpenConcurrent。
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	return open(t, dsn, 1)
}

// OpenConcurrent 在临时目录中创建 WAL 模式的文件库，允许多个连接同时写入。
// 事务以 IMMEDIATE 方式开始，写锁冲突由 busy_timeout 等待而不是直接失败。
func OpenConcurrent(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ironmind.db")
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate", path)
	return open(t, dsn, conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, storage.AutoMigrateTables(db))
	return db
}

// CreateUser 插入一个带好友码的测试用户。
func CreateUser(t testing.TB, db *gorm.DB, name, friendCode string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        strings.ToLower(name) + "@example.com",
		Name:         name,
		PasswordHash: "x",
		Goals:        []string{"strength"},
	}
	if friendCode != "" {
		code := friendCode
		user.FriendCode = &code
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
