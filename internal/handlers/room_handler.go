package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/billing"
	"backend/internal/db"
	"backend/internal/engine"
	"backend/internal/logger"
)

// 入住请求
type CheckinRequest struct {
	GuestID   string `json:"guest_id" binding:"required"`
	GuestName string `json:"guest_name" binding:"required"`
}

// RoomHandler 前台入住与退房接口
type RoomHandler struct {
	engine      *engine.Engine
	checkinRepo *db.CheckinRepository
	billingSvc  *billing.Service
}

func NewRoomHandler(eng *engine.Engine, checkinRepo *db.CheckinRepository, billingSvc *billing.Service) *RoomHandler {
	return &RoomHandler{engine: eng, checkinRepo: checkinRepo, billingSvc: billingSvc}
}

func (h *RoomHandler) Checkin(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}
	if _, err := h.engine.RoomStatus(roomID); err != nil {
		failEngine(c, err)
		return
	}
	rec, err := h.checkinRepo.Checkin(roomID, req.GuestID, req.GuestName)
	if err != nil {
		fail(c, http.StatusBadRequest, "入住失败", err)
		return
	}
	ok(c, "入住成功", rec)
}

// Checkout 退房：关闭入住记录，空调开着就顺带关掉，返回账单
func (h *RoomHandler) Checkout(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	rec, err := h.checkinRepo.Checkout(roomID)
	if err != nil {
		if errors.Is(err, db.ErrNoActiveCheckin) {
			fail(c, http.StatusBadRequest, "房间没有进行中的入住记录", err)
			return
		}
		fail(c, http.StatusInternalServerError, "退房失败", err)
		return
	}

	if err := h.engine.PowerOff(roomID); err != nil && !errors.Is(err, engine.ErrNotPoweredOn) {
		logger.Warn("退房时关闭房间 %d 空调失败: %v", roomID, err)
	}

	bill, err := h.billingSvc.GenerateBill(roomID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "生成账单失败", err)
		return
	}
	ok(c, "退房成功", gin.H{
		"checkin": rec,
		"bill":    bill,
	})
}

// ActiveCheckins 进行中的入住记录列表
func (h *RoomHandler) ActiveCheckins(c *gin.Context) {
	recs, err := h.checkinRepo.Active()
	if err != nil {
		fail(c, http.StatusInternalServerError, "查询失败", err)
		return
	}
	ok(c, "查询成功", recs)
}
