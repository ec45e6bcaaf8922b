package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/debounce"
	"backend/internal/engine"
	"backend/internal/types"
)

// 开机请求
type PowerOnRequest struct {
	Mode       string   `json:"mode" binding:"required"`      // cooling/heating
	FanSpeed   string   `json:"fan_speed" binding:"required"` // low/medium/high
	TargetTemp *float64 `json:"target_temp,omitempty"`        // 缺省用系统默认值
}

// 温度调节请求：单次调节给 target_temp，
// 面板连续拖动给 commands 列表，先消抖再逐条下发
type SetTemperatureRequest struct {
	TargetTemp *float64           `json:"target_temp,omitempty"`
	Commands   []debounce.Command `json:"commands,omitempty"`
}

// 风速调节请求
type SetFanSpeedRequest struct {
	FanSpeed string `json:"fan_speed" binding:"required"`
}

// 时间推进请求
type TickRequest struct {
	DeltaSeconds float64 `json:"delta_seconds"` // 0 合法，负数报错
}

// ACHandler 空调控制接口
type ACHandler struct {
	engine            *engine.Engine
	defaultTargetTemp float64
}

func NewACHandler(eng *engine.Engine, defaultTargetTemp float64) *ACHandler {
	return &ACHandler{engine: eng, defaultTargetTemp: defaultTargetTemp}
}

func (h *ACHandler) PowerOn(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	var req PowerOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}
	target := h.defaultTargetTemp
	if req.TargetTemp != nil {
		target = *req.TargetTemp
	}
	if err := h.engine.PowerOn(roomID, types.Mode(req.Mode), target, types.Speed(req.FanSpeed)); err != nil {
		failEngine(c, err)
		return
	}
	status, err := h.engine.RoomStatus(roomID)
	if err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "空调开启成功", status)
}

func (h *ACHandler) PowerOff(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	if err := h.engine.PowerOff(roomID); err != nil {
		failEngine(c, err)
		return
	}
	status, err := h.engine.RoomStatus(roomID)
	if err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "空调关闭成功", status)
}

func (h *ACHandler) SetTemperature(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	var req SetTemperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}

	switch {
	case len(req.Commands) > 0:
		for _, cmd := range debounce.Debounce(req.Commands) {
			if err := h.engine.AdjustTemperature(roomID, cmd.Value); err != nil {
				failEngine(c, err)
				return
			}
		}
	case req.TargetTemp != nil:
		if err := h.engine.AdjustTemperature(roomID, *req.TargetTemp); err != nil {
			failEngine(c, err)
			return
		}
	default:
		fail(c, http.StatusBadRequest, "缺少目标温度", nil)
		return
	}

	status, err := h.engine.RoomStatus(roomID)
	if err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "温度调节成功", status)
}

func (h *ACHandler) SetFanSpeed(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	var req SetFanSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}
	if err := h.engine.AdjustFanSpeed(roomID, types.Speed(req.FanSpeed)); err != nil {
		failEngine(c, err)
		return
	}
	status, err := h.engine.RoomStatus(roomID)
	if err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "风速调节成功", status)
}

// Tick 推进模拟时钟
func (h *ACHandler) Tick(c *gin.Context) {
	var req TickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}
	if err := h.engine.Tick(req.DeltaSeconds); err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "时间推进成功", gin.H{
		"clock_seconds": h.engine.Clock(),
		"serving":       h.engine.ServedRoomIDs(),
		"waiting":       h.engine.WaitingRoomIDs(),
	})
}

// Status 单个房间状态
func (h *ACHandler) Status(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	status, err := h.engine.RoomStatus(roomID)
	if err != nil {
		failEngine(c, err)
		return
	}
	ok(c, "查询成功", status)
}

// AllStatus 全部房间状态与队列快照
func (h *ACHandler) AllStatus(c *gin.Context) {
	ok(c, "查询成功", gin.H{
		"clock_seconds": h.engine.Clock(),
		"rooms":         h.engine.AllRoomStatus(),
		"serving":       h.engine.ServedRoomIDs(),
		"waiting":       h.engine.WaitingRoomIDs(),
	})
}
