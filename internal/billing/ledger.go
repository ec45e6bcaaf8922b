// internal/billing/ledger.go
// Package billing 定义详单台账：引擎在每次服务区间开始、延续、结束时
// 向台账发射记录事件，台账负责持久化与汇总查询。
// 记录一经关闭即不可变，费用只增量累加，从不回溯重算。
package billing

// 区间开始的原因
const (
	OpPowerOn     = "POWER_ON"     // 手动开机
	OpSpeedChange = "SPEED_CHANGE" // 调风速产生的新请求
	OpRotated     = "ROTATED"      // 时间片轮转换入
	OpPromoted    = "PROMOTED"     // 空位回填换入
	OpAutoRestart = "AUTO_RESTART" // 温度回漂触发的自动重启
)

// 区间结束的原因
const (
	ClosePowerOff      = "POWER_OFF"      // 手动关机
	ClosePreempted     = "PREEMPTED"      // 被高优先级请求抢占
	CloseRotatedOut    = "ROTATED_OUT"    // 时间片轮转换出
	CloseTargetReached = "TARGET_REACHED" // 达到目标温度自动停止
	CloseSpeedChange   = "SPEED_CHANGE"   // 调风速，旧区间结束
	CloseReplaced      = "REPLACED"       // 开机重复请求覆盖旧请求
)

// Record 一条服务区间详单
type Record struct {
	ID           int64
	RoomID       int
	StartSeconds float64  // 模拟时钟，区间开始
	EndSeconds   *float64 // nil 表示区间仍在进行
	Mode         string
	TargetTemp   float64
	FanSpeed     string
	Energy       float64 // 区间内累计能耗（度）
	Cost         float64 // 区间内累计费用（元）
	Operation    string  // 区间开始原因
	CloseReason  string  // 区间结束原因，未结束为空
}

// Totals 汇总结果
type Totals struct {
	Energy float64 `json:"total_energy"`
	Cost   float64 `json:"total_cost"`
}

// Ledger 引擎侧的写入接口
type Ledger interface {
	// Open 开启一条新区间记录，返回记录 ID
	Open(rec Record) (int64, error)
	// Extend 给进行中的记录追加能耗与费用增量
	Extend(recordID int64, energyDelta, costDelta float64) error
	// Close 关闭记录
	Close(recordID int64, endSeconds float64, reason string) error
}

// Query 查询侧接口，账单与报表用
type Query interface {
	// RoomRecords 房间的全部详单，按开始时间升序
	RoomRecords(roomID int) ([]Record, error)
	// RoomTotal 房间的累计能耗与费用
	RoomTotal(roomID int) (Totals, error)
	// Summary 全局汇总，start/end 为模拟时钟上的可选过滤（按区间开始时间）
	Summary(start, end *float64) (Totals, error)
}
