// internal/thermal/thermal.go
// Package thermal 按 tick 推进房间的物理与计费状态。
// 所有速率对 delta 线性生效，不做指数衰减；夹逼方向与变温方向一致，
// 单步之内温度绝不越过目标值（或初始温度）。
package thermal

import (
	"backend/internal/rooms"
	"backend/internal/types"
)

// 中风的基准温度变化率（度/分钟），送风与回温共用
const baseTempRatePerMinute = 0.5

// Params 温变与计费参数，构造后不再变化
type Params struct {
	EnergyRates        map[types.Speed]float64 // 度/分钟
	TempRateFactors    map[types.Speed]float64 // 相对中风的系数
	PricePerEnergyUnit float64                 // 元/度
}

// DefaultParams 标准费率：高1.0/中0.5/低1/3 度每分钟，1 元一度
func DefaultParams() Params {
	return Params{
		EnergyRates: map[types.Speed]float64{
			types.SpeedHigh:   1.0,
			types.SpeedMedium: 0.5,
			types.SpeedLow:    1.0 / 3.0,
		},
		TempRateFactors: map[types.Speed]float64{
			types.SpeedHigh:   1.2,
			types.SpeedMedium: 1.0,
			types.SpeedLow:    0.8,
		},
		PricePerEnergyUnit: 1.0,
	}
}

// Advance 把房间状态推进 delta 秒。
// serving 为真表示本 tick 调度器把该房间放在服务集合里；
// 返回本次新增的能耗（度），未送风时恒为 0。
func (p Params) Advance(room *rooms.Room, delta float64, serving bool) float64 {
	if delta <= 0 {
		return 0
	}
	if !serving {
		p.drift(room, delta)
		return 0
	}

	rate := baseTempRatePerMinute * p.TempRateFactors[room.FanSpeed] / 60.0 * delta
	switch room.Mode {
	case types.ModeCooling:
		if room.CurrentTemp > room.TargetTemp {
			room.CurrentTemp = max(room.TargetTemp, room.CurrentTemp-rate)
		}
	case types.ModeHeating:
		if room.CurrentTemp < room.TargetTemp {
			room.CurrentTemp = min(room.TargetTemp, room.CurrentTemp+rate)
		}
	}

	energyDelta := p.EnergyRates[room.FanSpeed] / 60.0 * delta
	room.EnergyUsed += energyDelta
	room.Cost = room.EnergyUsed * p.PricePerEnergyUnit
	return energyDelta
}

// drift 未送风（关机或等待）时温度向初始温度回归，不产生能耗
func (p Params) drift(room *rooms.Room, delta float64) {
	rate := baseTempRatePerMinute / 60.0 * delta
	if room.CurrentTemp > room.InitialTemp {
		room.CurrentTemp = max(room.InitialTemp, room.CurrentTemp-rate)
	} else if room.CurrentTemp < room.InitialTemp {
		room.CurrentTemp = min(room.InitialTemp, room.CurrentTemp+rate)
	}
}

// CostDelta 能耗增量对应的费用增量
func (p Params) CostDelta(energyDelta float64) float64 {
	return energyDelta * p.PricePerEnergyUnit
}
