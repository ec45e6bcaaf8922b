package db

import (
	"fmt"

	"gorm.io/gorm"

	"backend/internal/billing"
)

// GormLedger 基于 sqlite 详单表的台账实现，
// 同时满足写入侧 billing.Ledger 与查询侧 billing.Query。
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Open(rec billing.Record) (int64, error) {
	row := Detail{
		RoomID:       rec.RoomID,
		StartSeconds: rec.StartSeconds,
		Mode:         rec.Mode,
		TargetTemp:   rec.TargetTemp,
		FanSpeed:     rec.FanSpeed,
		Energy:       rec.Energy,
		Cost:         rec.Cost,
		Operation:    rec.Operation,
	}
	if err := l.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("写入详单失败: %w", err)
	}
	return row.ID, nil
}

func (l *GormLedger) Extend(recordID int64, energyDelta, costDelta float64) error {
	result := l.db.Model(&Detail{}).
		Where("id = ? AND end_seconds IS NULL", recordID).
		Updates(map[string]interface{}{
			"energy": gorm.Expr("energy + ?", energyDelta),
			"cost":   gorm.Expr("cost + ?", costDelta),
		})
	if result.Error != nil {
		return fmt.Errorf("追加详单增量失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("详单 %d 不存在或已关闭", recordID)
	}
	return nil
}

func (l *GormLedger) Close(recordID int64, endSeconds float64, reason string) error {
	result := l.db.Model(&Detail{}).
		Where("id = ? AND end_seconds IS NULL", recordID).
		Updates(map[string]interface{}{
			"end_seconds":  endSeconds,
			"close_reason": reason,
		})
	if result.Error != nil {
		return fmt.Errorf("关闭详单失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("详单 %d 不存在或已关闭", recordID)
	}
	return nil
}

func (l *GormLedger) RoomRecords(roomID int) ([]billing.Record, error) {
	var rows []Detail
	if err := l.db.Where("room_id = ?", roomID).
		Order("start_seconds ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询详单失败: %w", err)
	}
	records := make([]billing.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, billing.Record{
			ID:           row.ID,
			RoomID:       row.RoomID,
			StartSeconds: row.StartSeconds,
			EndSeconds:   row.EndSeconds,
			Mode:         row.Mode,
			TargetTemp:   row.TargetTemp,
			FanSpeed:     row.FanSpeed,
			Energy:       row.Energy,
			Cost:         row.Cost,
			Operation:    row.Operation,
			CloseReason:  row.CloseReason,
		})
	}
	return records, nil
}

func (l *GormLedger) RoomTotal(roomID int) (billing.Totals, error) {
	var totals billing.Totals
	err := l.db.Model(&Detail{}).
		Select("COALESCE(SUM(energy), 0) AS energy, COALESCE(SUM(cost), 0) AS cost").
		Where("room_id = ?", roomID).
		Scan(&totals).Error
	if err != nil {
		return billing.Totals{}, fmt.Errorf("汇总房间详单失败: %w", err)
	}
	return totals, nil
}

func (l *GormLedger) Summary(start, end *float64) (billing.Totals, error) {
	query := l.db.Model(&Detail{}).
		Select("COALESCE(SUM(energy), 0) AS energy, COALESCE(SUM(cost), 0) AS cost")
	if start != nil {
		query = query.Where("start_seconds >= ?", *start)
	}
	if end != nil {
		query = query.Where("start_seconds < ?", *end)
	}
	var totals billing.Totals
	if err := query.Scan(&totals).Error; err != nil {
		return billing.Totals{}, fmt.Errorf("汇总详单失败: %w", err)
	}
	return totals, nil
}
