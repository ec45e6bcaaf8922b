// internal/engine/status.go

package engine

import (
	"fmt"
)

// RoomStatus 房间状态快照
type RoomStatus struct {
	RoomID         int     `json:"room_id"`
	PowerState     string  `json:"power_state"`
	Mode           string  `json:"mode"`
	TargetTemp     float64 `json:"target_temp"`
	FanSpeed       string  `json:"fan_speed"`
	CurrentTemp    float64 `json:"current_temp"`
	InitialTemp    float64 `json:"initial_temp"`
	EnergyUsed     float64 `json:"energy_used"`
	Cost           float64 `json:"cost"`
	QueueState     string  `json:"queue_state"` // serving / waiting / idle
	ServedSeconds  float64 `json:"served_seconds"`
	WaitingSeconds float64 `json:"waiting_seconds"`
	AutoStopped    bool    `json:"auto_stopped"`
}

// RoomStatus 单个房间的快照查询，无副作用
func (e *Engine) RoomStatus(roomID int) (RoomStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.store.Get(roomID); !ok {
		return RoomStatus{}, fmt.Errorf("%w: %d", ErrUnknownRoom, roomID)
	}
	return e.statusLocked(roomID), nil
}

// AllRoomStatus 全部房间快照，房间号升序
func (e *Engine) AllRoomStatus() []RoomStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]RoomStatus, 0, e.store.Count())
	for _, room := range e.store.All() {
		result = append(result, e.statusLocked(room.RoomID))
	}
	return result
}

// ServedRoomIDs 当前服务集合快照
func (e *Engine) ServedRoomIDs() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched.ServedRoomIDs()
}

// WaitingRoomIDs 当前等待集合快照
func (e *Engine) WaitingRoomIDs() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched.WaitingRoomIDs()
}

// Clock 当前模拟时钟（秒）
func (e *Engine) Clock() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock
}

func (e *Engine) statusLocked(roomID int) RoomStatus {
	room, _ := e.store.Get(roomID)
	status := RoomStatus{
		RoomID:      room.RoomID,
		PowerState:  string(room.Power),
		Mode:        string(room.Mode),
		TargetTemp:  room.TargetTemp,
		FanSpeed:    string(room.FanSpeed),
		CurrentTemp: room.CurrentTemp,
		InitialTemp: room.InitialTemp,
		EnergyUsed:  room.EnergyUsed,
		Cost:        room.Cost,
		QueueState:  "idle",
		AutoStopped: room.AutoStopped,
	}
	if req, ok := e.sched.Lookup(roomID); ok {
		status.ServedSeconds = req.ServedSeconds
		status.WaitingSeconds = req.WaitingSeconds
		if e.sched.Serving(roomID) {
			status.QueueState = "serving"
		} else {
			status.QueueState = "waiting"
		}
	}
	return status
}
