package db

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"backend/internal/logger"
)

var DB *gorm.DB

// Init 打开 sqlite 数据库并迁移表结构，首次创建时写入种子数据
func Init(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Detail{}, &User{}, &CheckinRecord{}); err != nil {
		return fmt.Errorf("迁移表结构失败: %w", err)
	}

	DB = db
	seedUsers()
	return nil
}

// seedUsers 写入缺省账号，已存在则跳过
func seedUsers() {
	defaults := []User{
		{Username: "admin", Password: "admin123", Identity: "administrator"},
		{Username: "manager", Password: "manager123", Identity: "manager"},
		{Username: "reception", Password: "reception123", Identity: "reception"},
	}
	for _, u := range defaults {
		var count int64
		DB.Model(&User{}).Where("username = ?", u.Username).Count(&count)
		if count == 0 {
			if err := DB.Create(&u).Error; err != nil {
				logger.Error("创建缺省用户 %s 失败: %v", u.Username, err)
			}
		}
	}
}
