package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"backend/internal/billing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Detail{}, &User{}, &CheckinRecord{}))
	return gdb
}

func TestGormLedger(t *testing.T) {
	// 测试1: 开启-追加-关闭在数据库里的落盘结果
	t.Run("Record Lifecycle", func(t *testing.T) {
		l := NewGormLedger(newTestDB(t))

		id, err := l.Open(billing.Record{
			RoomID:       1,
			StartSeconds: 0,
			Mode:         "cooling",
			TargetTemp:   22,
			FanSpeed:     "high",
			Operation:    billing.OpPowerOn,
		})
		require.NoError(t, err)

		require.NoError(t, l.Extend(id, 1.0, 1.0))
		require.NoError(t, l.Extend(id, 0.5, 0.5))
		require.NoError(t, l.Close(id, 120, billing.CloseTargetReached))

		recs, err := l.RoomRecords(1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.InDelta(t, 1.5, recs[0].Energy, 1e-9)
		require.NotNil(t, recs[0].EndSeconds)
		assert.Equal(t, 120.0, *recs[0].EndSeconds)
		assert.Equal(t, billing.CloseTargetReached, recs[0].CloseReason)
	})

	// 测试2: 已关闭的记录不可再追加或关闭
	t.Run("Closed Is Immutable", func(t *testing.T) {
		l := NewGormLedger(newTestDB(t))

		id, _ := l.Open(billing.Record{RoomID: 1, Operation: billing.OpPowerOn})
		require.NoError(t, l.Close(id, 60, billing.ClosePowerOff))

		assert.Error(t, l.Extend(id, 1, 1))
		assert.Error(t, l.Close(id, 90, billing.ClosePowerOff))
	})

	// 测试3: 汇总查询与时间过滤
	t.Run("Totals And Summary", func(t *testing.T) {
		l := NewGormLedger(newTestDB(t))

		id1, _ := l.Open(billing.Record{RoomID: 1, StartSeconds: 0, Operation: billing.OpPowerOn})
		id2, _ := l.Open(billing.Record{RoomID: 1, StartSeconds: 200, Operation: billing.OpRotated})
		id3, _ := l.Open(billing.Record{RoomID: 2, StartSeconds: 50, Operation: billing.OpPowerOn})
		l.Extend(id1, 1, 1)
		l.Extend(id2, 2, 2)
		l.Extend(id3, 4, 4)

		totals, err := l.RoomTotal(1)
		require.NoError(t, err)
		assert.Equal(t, 3.0, totals.Energy)

		all, err := l.Summary(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 7.0, all.Energy)

		start, end := 0.0, 100.0
		window, err := l.Summary(&start, &end)
		require.NoError(t, err)
		assert.Equal(t, 5.0, window.Energy, "按区间开始时间左闭右开过滤")
	})

	// 测试4: 没有记录的房间汇总为零
	t.Run("Empty Room", func(t *testing.T) {
		l := NewGormLedger(newTestDB(t))

		totals, err := l.RoomTotal(9)
		require.NoError(t, err)
		assert.Zero(t, totals.Energy)
		assert.Zero(t, totals.Cost)
	})
}

func TestCheckinRepository(t *testing.T) {
	// 入住-重复入住-退房
	t.Run("Checkin Checkout", func(t *testing.T) {
		repo := NewCheckinRepository(newTestDB(t))

		rec, err := repo.Checkin(1, "110101199001011234", "张三")
		require.NoError(t, err)
		assert.Equal(t, CheckinStatusActive, rec.Status)

		_, err = repo.Checkin(1, "110101199001011235", "李四")
		assert.Error(t, err, "同一房间不可重复入住")

		out, err := repo.Checkout(1)
		require.NoError(t, err)
		assert.Equal(t, CheckinStatusClosed, out.Status)
		assert.NotNil(t, out.CheckoutTime)

		_, err = repo.Checkout(1)
		assert.ErrorIs(t, err, ErrNoActiveCheckin)
	})

	// 进行中的入住列表按房间号升序
	t.Run("Active List", func(t *testing.T) {
		repo := NewCheckinRepository(newTestDB(t))

		repo.Checkin(3, "id3", "丙")
		repo.Checkin(1, "id1", "甲")
		repo.Checkin(2, "id2", "乙")
		repo.Checkout(2)

		recs, err := repo.Active()
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, 1, recs[0].RoomID)
		assert.Equal(t, 3, recs[1].RoomID)
	})
}
