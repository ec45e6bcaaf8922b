// internal/events/events.go
// Package events 提供一个轻量事件总线。
// 事件只用于观测（监控、日志），处理器异步执行，
// 绝不回写引擎状态，也不在调度或计费路径上。
package events

import (
	"sync"
)

// EventType 事件类型
type EventType int

const (
	// 空调控制事件
	EventPowerOn EventType = iota
	EventPowerOff

	// 调度事件
	EventServiceStart     // 进入服务集合
	EventServiceInterrupt // 被抢占或轮转换出
	EventRotation         // 时间片轮转

	// 温控事件
	EventAutoStop    // 达到目标温度自动停机
	EventAutoRestart // 温度回漂自动重启

	// 时间推进
	EventTick
)

// EventNames 事件类型的字符串表示
var EventNames = map[EventType]string{
	EventPowerOn:          "PowerOn",
	EventPowerOff:         "PowerOff",
	EventServiceStart:     "ServiceStart",
	EventServiceInterrupt: "ServiceInterrupt",
	EventRotation:         "Rotation",
	EventAutoStop:         "AutoStop",
	EventAutoRestart:      "AutoRestart",
	EventTick:             "Tick",
}

// Event 事件结构，ClockSeconds 为引擎的模拟时钟
type Event struct {
	Type         EventType   `json:"type"`
	RoomID       int         `json:"room_id"`
	ClockSeconds float64     `json:"clock_seconds"`
	Data         interface{} `json:"data,omitempty"`
}

// RotationData 轮转事件的负载
type RotationData struct {
	PromotedRoomID int `json:"promoted_room_id"`
	DemotedRoomID  int `json:"demoted_room_id"`
}

// Handler 事件处理函数
type Handler func(Event)

// Bus 事件总线
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Publish 发布事件，处理器在各自的 goroutine 中异步执行
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, handler := range b.handlers[event.Type] {
		go handler(event)
	}
}

// Subscribe 订阅某类事件
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
