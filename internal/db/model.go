package db

import "time"

// 详单表：一条服务区间记录，关闭后不再修改
type Detail struct {
	ID           int64 `gorm:"primaryKey"`
	RoomID       int   `gorm:"index"`
	StartSeconds float64  // 模拟时钟，区间开始
	EndSeconds   *float64 // NULL 表示区间仍在进行
	Mode         string   `gorm:"type:varchar(20)"`
	TargetTemp   float64
	FanSpeed     string `gorm:"type:varchar(20)"`
	Energy       float64
	Cost         float64
	Operation    string `gorm:"type:varchar(32)"` // 区间开始原因
	CloseReason  string `gorm:"type:varchar(32)"` // 区间结束原因
	CreatedAt    time.Time
}

// 用户表
type User struct {
	Username string `gorm:"primaryKey;type:varchar(255)"`
	Password string `gorm:"type:varchar(255)"`
	Identity string `gorm:"type:varchar(255)"`
}

// 入住记录表
type CheckinRecord struct {
	ID           int64 `gorm:"primaryKey"`
	RoomID       int   `gorm:"index"`
	GuestID      string `gorm:"type:varchar(255)"`
	GuestName    string `gorm:"type:varchar(255)"`
	CheckinTime  time.Time
	CheckoutTime *time.Time
	Status       string `gorm:"type:varchar(20)"` // checked_in / checked_out
}
