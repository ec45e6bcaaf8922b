package monitor

import (
	"time"

	"backend/internal/engine"
	"backend/internal/events"
	"backend/internal/logger"
)

// StatusSource 监控所需的状态快照来源
type StatusSource interface {
	AllRoomStatus() []engine.RoomStatus
	ServedRoomIDs() []int
	WaitingRoomIDs() []int
	Clock() float64
}

// Monitor 订阅调度事件并周期性打印系统概况
type Monitor struct {
	source   StatusSource
	bus      *events.Bus
	interval time.Duration
	stopChan chan struct{}
}

func New(source StatusSource, bus *events.Bus, interval time.Duration) *Monitor {
	if interval == 0 {
		interval = 5 * time.Second // 默认5秒打印一次
	}
	return &Monitor{
		source:   source,
		bus:      bus,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	for _, eventType := range []events.EventType{
		events.EventServiceStart,
		events.EventServiceInterrupt,
		events.EventRotation,
		events.EventAutoStop,
		events.EventAutoRestart,
	} {
		m.bus.Subscribe(eventType, m.onEvent)
	}
	go m.run()
	logger.Info("监控启动，快照间隔 %v", m.interval)
}

func (m *Monitor) Stop() {
	close(m.stopChan)
	logger.Info("监控停止")
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.logSnapshot()
		case <-m.stopChan:
			return
		}
	}
}

// onEvent 把关键调度事件写进日志，Tick 事件太密不打
func (m *Monitor) onEvent(ev events.Event) {
	switch ev.Type {
	case events.EventServiceStart:
		logger.Info("[时钟 %.1fs] 房间 %d 开始送风", ev.ClockSeconds, ev.RoomID)
	case events.EventServiceInterrupt:
		logger.Info("[时钟 %.1fs] 房间 %d 被抢占，转入等待", ev.ClockSeconds, ev.RoomID)
	case events.EventRotation:
		if data, ok := ev.Data.(events.RotationData); ok {
			logger.Info("[时钟 %.1fs] 时间片轮转: 房间 %d 换入, 房间 %d 换出",
				ev.ClockSeconds, data.PromotedRoomID, data.DemotedRoomID)
		}
	case events.EventAutoStop:
		logger.Info("[时钟 %.1fs] 房间 %d 到达目标温度，自动停止", ev.ClockSeconds, ev.RoomID)
	case events.EventAutoRestart:
		logger.Info("[时钟 %.1fs] 房间 %d 温度回漂，自动重启", ev.ClockSeconds, ev.RoomID)
	}
}

func (m *Monitor) logSnapshot() {
	serving := m.source.ServedRoomIDs()
	waiting := m.source.WaitingRoomIDs()

	logger.Info("=== 系统概况 [时钟 %.1fs] ===", m.source.Clock())
	logger.Info("服务队列 %d 间: %v, 等待队列 %d 间: %v",
		len(serving), serving, len(waiting), waiting)

	for _, status := range m.source.AllRoomStatus() {
		if status.PowerState != "active" {
			continue
		}
		logger.Info("房间 %d: 模式=%s 风速=%s 当前=%.1f°C 目标=%.1f°C 状态=%s 能耗=%.2f 费用=%.2f",
			status.RoomID, status.Mode, status.FanSpeed,
			status.CurrentTemp, status.TargetTemp,
			status.QueueState, status.EnergyUsed, status.Cost)
	}
}
