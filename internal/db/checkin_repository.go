package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	CheckinStatusActive = "checked_in"
	CheckinStatusClosed = "checked_out"
)

var ErrNoActiveCheckin = errors.New("房间没有进行中的入住记录")

type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// Checkin 创建入住记录，同一房间已有进行中的记录则报错
func (r *CheckinRepository) Checkin(roomID int, guestID, guestName string) (*CheckinRecord, error) {
	var count int64
	if err := r.db.Model(&CheckinRecord{}).
		Where("room_id = ? AND status = ?", roomID, CheckinStatusActive).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询入住状态失败: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("房间 %d 已有客人入住", roomID)
	}
	rec := CheckinRecord{
		RoomID:      roomID,
		GuestID:     guestID,
		GuestName:   guestName,
		CheckinTime: time.Now(),
		Status:      CheckinStatusActive,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("写入入住记录失败: %w", err)
	}
	return &rec, nil
}

// Checkout 关闭进行中的入住记录
func (r *CheckinRepository) Checkout(roomID int) (*CheckinRecord, error) {
	var rec CheckinRecord
	err := r.db.Where("room_id = ? AND status = ?", roomID, CheckinStatusActive).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveCheckin
	}
	if err != nil {
		return nil, fmt.Errorf("查询入住记录失败: %w", err)
	}
	now := time.Now()
	rec.CheckoutTime = &now
	rec.Status = CheckinStatusClosed
	if err := r.db.Save(&rec).Error; err != nil {
		return nil, fmt.Errorf("更新入住记录失败: %w", err)
	}
	return &rec, nil
}

// Active 进行中的入住记录，房间号升序
func (r *CheckinRepository) Active() ([]CheckinRecord, error) {
	var recs []CheckinRecord
	if err := r.db.Where("status = ?", CheckinStatusActive).
		Order("room_id ASC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("查询入住记录失败: %w", err)
	}
	return recs, nil
}
