// internal/billing/memory.go

package billing

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryLedger 内存台账，测试与免数据库运行用
type MemoryLedger struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*Record
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		nextID:  1,
		records: make(map[int64]*Record),
	}
}

func (l *MemoryLedger) Open(rec Record) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = l.nextID
	l.nextID++
	l.records[rec.ID] = &rec
	return rec.ID, nil
}

func (l *MemoryLedger) Extend(recordID int64, energyDelta, costDelta float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordID]
	if !ok {
		return fmt.Errorf("billing: record %d not found", recordID)
	}
	rec.Energy += energyDelta
	rec.Cost += costDelta
	return nil
}

func (l *MemoryLedger) Close(recordID int64, endSeconds float64, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordID]
	if !ok {
		return fmt.Errorf("billing: record %d not found", recordID)
	}
	if rec.EndSeconds != nil {
		return fmt.Errorf("billing: record %d already closed", recordID)
	}
	end := endSeconds
	rec.EndSeconds = &end
	rec.CloseReason = reason
	return nil
}

func (l *MemoryLedger) RoomRecords(roomID int) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []Record
	for _, rec := range l.records {
		if rec.RoomID == roomID {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartSeconds != result[j].StartSeconds {
			return result[i].StartSeconds < result[j].StartSeconds
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (l *MemoryLedger) RoomTotal(roomID int) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var t Totals
	for _, rec := range l.records {
		if rec.RoomID == roomID {
			t.Energy += rec.Energy
			t.Cost += rec.Cost
		}
	}
	return t, nil
}

func (l *MemoryLedger) Summary(start, end *float64) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var t Totals
	for _, rec := range l.records {
		if start != nil && rec.StartSeconds < *start {
			continue
		}
		if end != nil && rec.StartSeconds >= *end {
			continue
		}
		t.Energy += rec.Energy
		t.Cost += rec.Cost
	}
	return t, nil
}
