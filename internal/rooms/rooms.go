// internal/rooms/rooms.go
// Package rooms 持有全部房间的运行时状态。
// 房间在系统初始化时一次性创建，之后只被开关机，不会销毁。
package rooms

import (
	"sort"

	"backend/internal/types"
)

// Room 单个房间的完整状态，归 Store 独占
type Room struct {
	RoomID      int
	Power       types.PowerState
	Mode        types.Mode
	TargetTemp  float64
	FanSpeed    types.Speed
	CurrentTemp float64
	InitialTemp float64 // 无人服务时温度回归的环境温度
	EnergyUsed  float64 // 服务期间单调不减
	Cost        float64 // 恒等于 EnergyUsed * 单价，增量维护
	AutoStopped bool    // 区分系统自动停机与手动关机，重启控制器依赖此标记
}

// Store 房间状态存储（内存版），引擎实例独占，不做内部加锁
type Store struct {
	rooms map[int]*Room
	ids   []int
}

// NewStore 创建 roomCount 间房，编号从 1 开始。
// initialTemps 缺省的房间使用 defaultInitialTemp，目标温度统一播种为
// defaultTargetTemp（开机时按请求参数覆盖）。
func NewStore(roomCount int, defaultTargetTemp, defaultInitialTemp float64, initialTemps map[int]float64) *Store {
	s := &Store{
		rooms: make(map[int]*Room, roomCount),
		ids:   make([]int, 0, roomCount),
	}
	for id := 1; id <= roomCount; id++ {
		temp := defaultInitialTemp
		if t, ok := initialTemps[id]; ok {
			temp = t
		}
		s.rooms[id] = &Room{
			RoomID:      id,
			Power:       types.PowerOff,
			Mode:        types.ModeCooling,
			FanSpeed:    types.SpeedMedium,
			TargetTemp:  defaultTargetTemp,
			CurrentTemp: temp,
			InitialTemp: temp,
		}
		s.ids = append(s.ids, id)
	}
	sort.Ints(s.ids)
	return s
}

// Get 按房间号取房间，不存在返回 false
func (s *Store) Get(roomID int) (*Room, bool) {
	room, ok := s.rooms[roomID]
	return room, ok
}

// All 返回全部房间，按房间号升序
func (s *Store) All() []*Room {
	result := make([]*Room, 0, len(s.ids))
	for _, id := range s.ids {
		result = append(result, s.rooms[id])
	}
	return result
}

// Count 房间总数
func (s *Store) Count() int {
	return len(s.ids)
}
