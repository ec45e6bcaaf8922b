// internal/scheduler/scheduler.go
// Package scheduler 实现中央空调的送风调度：
//   - 服务对象数量受 capacity 限制
//   - 优先级调度：高风速请求可抢占严格低优先级的服务对象
//   - 时间片调度：同风速请求等待满一个时间片后，轮转抢占服务时间最长者
//
// 调度器完全运行在显式推进的模拟时间上，不读墙上时钟、不起 goroutine，
// 同样的输入序列必然产生同样的调度结果。并发保护由持有它的引擎负责。
package scheduler

import (
	"sort"

	"backend/internal/types"
)

// Request 一个房间的送风请求。
// 任意时刻每个房间至多一条请求，且要么在服务集合要么在等待集合。
// 调风速不是原地修改而是废弃旧请求、提交新请求，累计的计时一并作废。
type Request struct {
	RoomID         int
	Speed          types.Speed
	ServedSeconds  float64 // 本轮连续服务时长，移出服务集合时归零
	WaitingSeconds float64 // 本轮等待时长，进入（或重新进入）等待集合时归零
}

// Rotation 一次时间片轮转的结果
type Rotation struct {
	PromotedRoomID int // 从等待集合提升的房间
	DemotedRoomID  int // 被换出服务集合的房间
}

// Scheduler 调度器，服务集合与等待集合的唯一持有者
type Scheduler struct {
	capacity  int
	timeSlice float64

	served  map[int]*Request
	waiting map[int]*Request
}

func New(capacity int, timeSliceSeconds float64) *Scheduler {
	return &Scheduler{
		capacity:  capacity,
		timeSlice: timeSliceSeconds,
		served:    make(map[int]*Request),
		waiting:   make(map[int]*Request),
	}
}

// Submit 为房间创建（或替换）送风请求。
// 返回是否直接进入服务集合；evicted 为被抢占进等待集合的房间号，0 表示没有。
func (s *Scheduler) Submit(roomID int, speed types.Speed) (admitted bool, evicted int) {
	// 同房间的旧请求先作废，累计计时随之丢弃
	s.discard(roomID)

	req := &Request{RoomID: roomID, Speed: speed}

	// 有空位直接分配
	if len(s.served) < s.capacity {
		s.served[roomID] = req
		return true, 0
	}

	// 优先级调度：严格高于服务集合中最低优先级者才能抢占
	victim := s.lowestPriorityServed()
	if victim != nil && types.SpeedPriority[speed] > types.SpeedPriority[victim.Speed] {
		s.demote(victim)
		s.served[roomID] = req
		return true, victim.RoomID
	}

	// 进入等待集合
	req.WaitingSeconds = 0
	s.waiting[roomID] = req
	return false, 0
}

// Cancel 撤销房间的请求，两个集合都查，没有则为空操作。
// 服务集合腾出空位时回填等待集合中最合适的请求，promoted 为被回填的
// 房间号，0 表示没有。
func (s *Scheduler) Cancel(roomID int) (removed bool, promoted int) {
	if _, ok := s.waiting[roomID]; ok {
		delete(s.waiting, roomID)
		return true, 0
	}
	if _, ok := s.served[roomID]; !ok {
		return false, 0
	}
	delete(s.served, roomID)

	next := s.bestWaiting()
	if next == nil {
		return true, 0
	}
	delete(s.waiting, next.RoomID)
	next.ServedSeconds = 0
	s.served[next.RoomID] = next
	return true, next.RoomID
}

// Tick 推进模拟时间 delta 秒：先更新所有计时器，再做时间片轮转。
// 轮转按房间号升序逐个评估，保证可复现。
func (s *Scheduler) Tick(delta float64) []Rotation {
	for _, req := range s.served {
		req.ServedSeconds += delta
	}
	for _, req := range s.waiting {
		req.WaitingSeconds += delta
	}

	if s.timeSlice <= 0 {
		return nil
	}

	var rotations []Rotation
	for _, roomID := range s.WaitingRoomIDs() {
		req, ok := s.waiting[roomID]
		if !ok || req.WaitingSeconds < s.timeSlice {
			continue
		}

		// 只在相同风速之间轮转：找同风速里服务时间最长者
		victim := s.longestServedWithSpeed(req.Speed)
		if victim == nil {
			// 没有同风速的服务对象：保留已累计的等待时间，
			// 下个 tick 继续参与评估，也仍可能赢得后续 Submit 触发的抢占
			continue
		}

		s.demote(victim)
		delete(s.waiting, roomID)
		req.ServedSeconds = 0
		s.served[roomID] = req
		rotations = append(rotations, Rotation{
			PromotedRoomID: roomID,
			DemotedRoomID:  victim.RoomID,
		})
	}
	return rotations
}

// ServedRoomIDs 服务集合快照，房间号升序
func (s *Scheduler) ServedRoomIDs() []int {
	return sortedKeys(s.served)
}

// WaitingRoomIDs 等待集合快照，房间号升序
func (s *Scheduler) WaitingRoomIDs() []int {
	return sortedKeys(s.waiting)
}

// Serving 房间是否在服务集合中
func (s *Scheduler) Serving(roomID int) bool {
	_, ok := s.served[roomID]
	return ok
}

// Waiting 房间是否在等待集合中
func (s *Scheduler) Waiting(roomID int) bool {
	_, ok := s.waiting[roomID]
	return ok
}

// Lookup 返回房间请求的副本
func (s *Scheduler) Lookup(roomID int) (Request, bool) {
	if req, ok := s.served[roomID]; ok {
		return *req, true
	}
	if req, ok := s.waiting[roomID]; ok {
		return *req, true
	}
	return Request{}, false
}

// Capacity 最大并发服务数
func (s *Scheduler) Capacity() int {
	return s.capacity
}

// discard 作废房间的现有请求，不触发回填（Submit 马上会占用名额）
func (s *Scheduler) discard(roomID int) {
	delete(s.served, roomID)
	delete(s.waiting, roomID)
}

// demote 把服务对象换出到等待集合，等待计时归零
func (s *Scheduler) demote(req *Request) {
	delete(s.served, req.RoomID)
	req.ServedSeconds = 0
	req.WaitingSeconds = 0
	s.waiting[req.RoomID] = req
}

// lowestPriorityServed 服务集合中优先级最低者，同优先级取房间号最小
func (s *Scheduler) lowestPriorityServed() *Request {
	var victim *Request
	for _, roomID := range sortedKeys(s.served) {
		req := s.served[roomID]
		if victim == nil || types.SpeedPriority[req.Speed] < types.SpeedPriority[victim.Speed] {
			victim = req
		}
	}
	return victim
}

// longestServedWithSpeed 同风速服务对象中服务时间最长者，平局取房间号最小
func (s *Scheduler) longestServedWithSpeed(speed types.Speed) *Request {
	var victim *Request
	for _, roomID := range sortedKeys(s.served) {
		req := s.served[roomID]
		if req.Speed != speed {
			continue
		}
		if victim == nil || req.ServedSeconds > victim.ServedSeconds {
			victim = req
		}
	}
	return victim
}

// bestWaiting 回填用：优先级最高，其次等待最久，最后房间号最小
func (s *Scheduler) bestWaiting() *Request {
	var best *Request
	for _, roomID := range sortedKeys(s.waiting) {
		req := s.waiting[roomID]
		if best == nil {
			best = req
			continue
		}
		pr, pb := types.SpeedPriority[req.Speed], types.SpeedPriority[best.Speed]
		if pr > pb || (pr == pb && req.WaitingSeconds > best.WaitingSeconds) {
			best = req
		}
	}
	return best
}

func sortedKeys(m map[int]*Request) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
