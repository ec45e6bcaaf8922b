// internal/types/types.go

package types

// Mode 空调工作模式
type Mode string

const (
	ModeCooling Mode = "cooling"
	ModeHeating Mode = "heating"
)

// Speed 风速，同时充当调度优先级（高风 > 中风 > 低风）
type Speed string

const (
	SpeedLow    Speed = "low"
	SpeedMedium Speed = "medium"
	SpeedHigh   Speed = "high"
)

// PowerState 房间空调电源状态
type PowerState string

const (
	PowerOff    PowerState = "off"
	PowerActive PowerState = "active"
)

// SpeedPriority 风速优先级映射，调度器只比较整数，不比较字符串
var SpeedPriority = map[Speed]int{
	SpeedLow:    1,
	SpeedMedium: 2,
	SpeedHigh:   3,
}

// TempRange 目标温度范围
type TempRange struct {
	Min float64
	Max float64
}

// Clamp 把目标温度收敛到范围内，越界不算错误
func (r TempRange) Clamp(t float64) float64 {
	if t < r.Min {
		return r.Min
	}
	if t > r.Max {
		return r.Max
	}
	return t
}

// ParseMode 解析工作模式
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCooling, ModeHeating:
		return Mode(s), true
	}
	return "", false
}

// ParseSpeed 解析风速
func ParseSpeed(s string) (Speed, bool) {
	switch Speed(s) {
	case SpeedLow, SpeedMedium, SpeedHigh:
		return Speed(s), true
	}
	return "", false
}
