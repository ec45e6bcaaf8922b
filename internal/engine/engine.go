// internal/engine/engine.go
// Package engine 是中央空调模拟的对外门面：承接控制指令，驱动调度器、
// 温变模型与自动停复机控制器，并向计费台账发射区间记录。
//
// 引擎运行在显式推进的模拟时钟上，单线程协作式：内部没有 goroutine
// 修改状态，所有入口由实例级互斥锁串行化，供多线程宿主直接嵌入。
package engine

import (
	"fmt"
	"sync"

	"backend/internal/billing"
	"backend/internal/events"
	"backend/internal/logger"
	"backend/internal/rooms"
	"backend/internal/scheduler"
	"backend/internal/thermal"
	"backend/internal/types"
)

// 自动重启的回差带（度）：自动停机后温度偏离目标超过该值才重新请求送风
const restartBand = 1.0

// Config 引擎构造参数，生命周期内固定
type Config struct {
	RoomCount          int
	ServiceCapacity    int
	TimeSliceSeconds   float64
	DefaultTargetTemp  float64
	DefaultInitialTemp float64
	InitialTemps       map[int]float64
	CoolingRange       types.TempRange
	HeatingRange       types.TempRange
	Thermal            thermal.Params
}

// DefaultConfig 标准布置：5 间客房，3 个服务位，时间片 120 秒
func DefaultConfig() Config {
	return Config{
		RoomCount:          5,
		ServiceCapacity:    3,
		TimeSliceSeconds:   120,
		DefaultTargetTemp:  25.0,
		DefaultInitialTemp: 25.0,
		CoolingRange:       types.TempRange{Min: 18, Max: 25},
		HeatingRange:       types.TempRange{Min: 25, Max: 30},
		Thermal:            thermal.DefaultParams(),
	}
}

// Engine 模拟引擎实例。房间与请求状态归引擎独占，调用方持有引擎指针。
type Engine struct {
	mu sync.Mutex

	cfg    Config
	store  *rooms.Store
	sched  *scheduler.Scheduler
	ledger billing.Ledger
	bus    *events.Bus // 可为 nil，事件只用于观测

	clock float64         // 模拟时钟（秒）
	open  map[int]int64   // 房间号 -> 进行中的详单记录 ID
}

func New(cfg Config, ledger billing.Ledger, bus *events.Bus) *Engine {
	return &Engine{
		cfg:    cfg,
		store:  rooms.NewStore(cfg.RoomCount, cfg.DefaultTargetTemp, cfg.DefaultInitialTemp, cfg.InitialTemps),
		sched:  scheduler.New(cfg.ServiceCapacity, cfg.TimeSliceSeconds),
		ledger: ledger,
		bus:    bus,
		open:   make(map[int]int64),
	}
}

// PowerOn 开机并提交送风请求。
// 已开机的房间视作重复请求：废弃旧请求、按新参数重建（计时清零）。
func (e *Engine) PowerOn(roomID int, mode types.Mode, targetTemp float64, speed types.Speed) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.room(roomID)
	if err != nil {
		return err
	}
	if _, ok := types.SpeedPriority[speed]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFanSpeed, speed)
	}
	if mode != types.ModeCooling && mode != types.ModeHeating {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if room.Power == types.PowerActive {
		// 重复开机：旧区间到此为止
		e.closeRecord(roomID, billing.CloseReplaced)
	}

	room.Mode = mode
	room.TargetTemp = e.clampTarget(mode, targetTemp)
	room.FanSpeed = speed
	room.Power = types.PowerActive
	room.AutoStopped = false

	admitted, evicted := e.sched.Submit(roomID, speed)
	if evicted != 0 {
		e.closeRecord(evicted, billing.ClosePreempted)
		e.publish(events.Event{Type: events.EventServiceInterrupt, RoomID: evicted, ClockSeconds: e.clock})
	}
	if admitted {
		e.openRecord(room, billing.OpPowerOn)
		e.publish(events.Event{Type: events.EventServiceStart, RoomID: roomID, ClockSeconds: e.clock})
	}
	e.publish(events.Event{Type: events.EventPowerOn, RoomID: roomID, ClockSeconds: e.clock})

	logger.Info("房间 %d 开机: 模式=%s 目标温度=%.1f 风速=%s 直接服务=%v",
		roomID, mode, room.TargetTemp, speed, admitted)
	return nil
}

// PowerOff 手动关机：撤销请求、结束详单区间。
// 手动关机的房间绝不自动重启，只有再次手动开机才会恢复。
func (e *Engine) PowerOff(roomID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.room(roomID)
	if err != nil {
		return err
	}
	if room.Power != types.PowerActive {
		return fmt.Errorf("%w: room %d", ErrNotPoweredOn, roomID)
	}

	_, promoted := e.sched.Cancel(roomID)
	e.closeRecord(roomID, billing.ClosePowerOff)
	e.promote(promoted)

	room.Power = types.PowerOff
	room.AutoStopped = false
	e.publish(events.Event{Type: events.EventPowerOff, RoomID: roomID, ClockSeconds: e.clock})

	logger.Info("房间 %d 手动关机", roomID)
	return nil
}

// AdjustTemperature 调节目标温度。只改目标值（按模式范围夹逼），
// 不产生新请求，也不触碰现有请求。
func (e *Engine) AdjustTemperature(roomID int, targetTemp float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.room(roomID)
	if err != nil {
		return err
	}
	if room.Power != types.PowerActive {
		return fmt.Errorf("%w: room %d", ErrNotPoweredOn, roomID)
	}

	room.TargetTemp = e.clampTarget(room.Mode, targetTemp)
	logger.Debug("房间 %d 目标温度调为 %.1f", roomID, room.TargetTemp)
	return nil
}

// AdjustFanSpeed 调节风速：废弃旧请求、按新风速重新提交。
// 旧请求累计的服务/等待计时随之丢弃，这是刻意的可见效果。
func (e *Engine) AdjustFanSpeed(roomID int, speed types.Speed) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.room(roomID)
	if err != nil {
		return err
	}
	if _, ok := types.SpeedPriority[speed]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFanSpeed, speed)
	}
	if room.Power != types.PowerActive {
		return fmt.Errorf("%w: room %d", ErrNotPoweredOn, roomID)
	}

	wasServing := e.sched.Serving(roomID)
	if wasServing {
		e.closeRecord(roomID, billing.CloseSpeedChange)
	}
	room.FanSpeed = speed

	admitted, evicted := e.sched.Submit(roomID, speed)
	if evicted != 0 {
		e.closeRecord(evicted, billing.ClosePreempted)
		e.publish(events.Event{Type: events.EventServiceInterrupt, RoomID: evicted, ClockSeconds: e.clock})
	}
	if admitted {
		e.openRecord(room, billing.OpSpeedChange)
		e.publish(events.Event{Type: events.EventServiceStart, RoomID: roomID, ClockSeconds: e.clock})
	}

	logger.Info("房间 %d 调风速为 %s, 服务中=%v", roomID, speed, admitted)
	return nil
}

// Tick 推进模拟时间 delta 秒。一次调用内的顺序固定：
// 调度器计时与轮转 -> 按服务状态推进温度与能耗 -> 时钟前进 -> 自动停复机。
// 轮转区间在拍首切换，停复机发生在拍末，各自的详单时间戳与此对应。
func (e *Engine) Tick(delta float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if delta < 0 {
		return fmt.Errorf("%w: %.3f", ErrNegativeTimeDelta, delta)
	}

	// 1. 调度：先更新计时器，再按房间号升序做时间片轮转
	for _, rot := range e.sched.Tick(delta) {
		e.closeRecord(rot.DemotedRoomID, billing.CloseRotatedOut)
		if promotedRoom, ok := e.store.Get(rot.PromotedRoomID); ok {
			e.openRecord(promotedRoom, billing.OpRotated)
		}
		e.publish(events.Event{
			Type:         events.EventRotation,
			RoomID:       rot.PromotedRoomID,
			ClockSeconds: e.clock,
			Data:         events.RotationData{PromotedRoomID: rot.PromotedRoomID, DemotedRoomID: rot.DemotedRoomID},
		})
	}

	// 2. 物理与计费：服务中的房间向目标温度靠拢并积累能耗，
	//    其余房间向初始温度回漂
	for _, room := range e.store.All() {
		serving := e.sched.Serving(room.RoomID)
		energyDelta := e.cfg.Thermal.Advance(room, delta, serving)
		if energyDelta > 0 {
			e.extendRecord(room.RoomID, energyDelta, e.cfg.Thermal.CostDelta(energyDelta))
		}
	}

	// 3. 先推进时钟再做自动停复机：停复机基于本拍结束时的温度，
	//    它开关的详单区间也要落在拍末的时间戳上
	e.clock += delta
	e.autoStopAndRestart()

	e.publish(events.Event{Type: events.EventTick, ClockSeconds: e.clock})
	return nil
}

// autoStopAndRestart 自动停复机控制器。
// 服务中达到目标温度 -> 撤销请求、关机并打上 AutoStopped 标记；
// 自动停机的房间温度偏离目标超过回差带 -> 沿用原模式与风速重新请求。
func (e *Engine) autoStopAndRestart() {
	for _, room := range e.store.All() {
		roomID := room.RoomID

		if e.sched.Serving(roomID) && reachedTarget(room) {
			e.closeRecord(roomID, billing.CloseTargetReached)
			_, promoted := e.sched.Cancel(roomID)
			room.Power = types.PowerOff
			room.AutoStopped = true
			e.publish(events.Event{Type: events.EventAutoStop, RoomID: roomID, ClockSeconds: e.clock})
			logger.Info("房间 %d 达到目标温度 %.1f, 自动停机", roomID, room.TargetTemp)
			e.promote(promoted)
			continue
		}

		if room.Power == types.PowerOff && room.AutoStopped && driftedPastBand(room) {
			room.Power = types.PowerActive
			room.AutoStopped = false
			admitted, evicted := e.sched.Submit(roomID, room.FanSpeed)
			if evicted != 0 {
				e.closeRecord(evicted, billing.ClosePreempted)
				e.publish(events.Event{Type: events.EventServiceInterrupt, RoomID: evicted, ClockSeconds: e.clock})
			}
			if admitted {
				e.openRecord(room, billing.OpAutoRestart)
				e.publish(events.Event{Type: events.EventServiceStart, RoomID: roomID, ClockSeconds: e.clock})
			}
			e.publish(events.Event{Type: events.EventAutoRestart, RoomID: roomID, ClockSeconds: e.clock})
			logger.Info("房间 %d 温度回漂至 %.2f, 自动重启 (目标 %.1f)", roomID, room.CurrentTemp, room.TargetTemp)
		}
	}
}

// reachedTarget 服务中的房间是否已到达目标温度
func reachedTarget(room *rooms.Room) bool {
	if room.Mode == types.ModeCooling {
		return room.CurrentTemp <= room.TargetTemp
	}
	return room.CurrentTemp >= room.TargetTemp
}

// driftedPastBand 温度是否已偏离目标超过回差带
func driftedPastBand(room *rooms.Room) bool {
	if room.Mode == types.ModeCooling {
		return room.CurrentTemp >= room.TargetTemp+restartBand
	}
	return room.CurrentTemp <= room.TargetTemp-restartBand
}

// promote 空位回填成功后补开详单区间
func (e *Engine) promote(roomID int) {
	if roomID == 0 {
		return
	}
	room, ok := e.store.Get(roomID)
	if !ok {
		return
	}
	e.openRecord(room, billing.OpPromoted)
	e.publish(events.Event{Type: events.EventServiceStart, RoomID: roomID, ClockSeconds: e.clock})
}

func (e *Engine) room(roomID int) (*rooms.Room, error) {
	room, ok := e.store.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRoom, roomID)
	}
	return room, nil
}

func (e *Engine) clampTarget(mode types.Mode, t float64) float64 {
	if mode == types.ModeHeating {
		return e.cfg.HeatingRange.Clamp(t)
	}
	return e.cfg.CoolingRange.Clamp(t)
}

// openRecord 开启详单区间。台账故障只记日志，不影响送风服务。
func (e *Engine) openRecord(room *rooms.Room, op string) {
	id, err := e.ledger.Open(billing.Record{
		RoomID:       room.RoomID,
		StartSeconds: e.clock,
		Mode:         string(room.Mode),
		TargetTemp:   room.TargetTemp,
		FanSpeed:     string(room.FanSpeed),
		Operation:    op,
	})
	if err != nil {
		logger.Error("创建详单记录失败 - 房间 %d: %v", room.RoomID, err)
		return
	}
	e.open[room.RoomID] = id
}

func (e *Engine) closeRecord(roomID int, reason string) {
	id, ok := e.open[roomID]
	if !ok {
		return
	}
	delete(e.open, roomID)
	if err := e.ledger.Close(id, e.clock, reason); err != nil {
		logger.Error("关闭详单记录失败 - 房间 %d: %v", roomID, err)
	}
}

func (e *Engine) extendRecord(roomID int, energyDelta, costDelta float64) {
	id, ok := e.open[roomID]
	if !ok {
		return
	}
	if err := e.ledger.Extend(id, energyDelta, costDelta); err != nil {
		logger.Error("更新详单记录失败 - 房间 %d: %v", roomID, err)
	}
}

func (e *Engine) publish(event events.Event) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}
