package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/billing"
	"backend/internal/logger"
	"backend/internal/utils"
)

// BillingHandler 账单与报表接口
type BillingHandler struct {
	svc *billing.Service
}

func NewBillingHandler(svc *billing.Service) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// Bill 房间账单汇总
func (h *BillingHandler) Bill(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	bill, err := h.svc.GenerateBill(roomID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "生成账单失败", err)
		return
	}
	ok(c, "查询成功", bill)
}

// Details 房间详单列表
func (h *BillingHandler) Details(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	details, err := h.svc.GetDetails(roomID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "查询详单失败", err)
		return
	}
	ok(c, "查询成功", details)
}

// BillPDF 导出房间详单 PDF
func (h *BillingHandler) BillPDF(c *gin.Context) {
	roomID, okID := roomIDParam(c)
	if !okID {
		return
	}
	bill, err := h.svc.GenerateBill(roomID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "生成账单失败", err)
		return
	}
	details, err := h.svc.GetDetails(roomID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "查询详单失败", err)
		return
	}
	pdf, err := utils.GenerateBillPDF(bill, details)
	if err != nil {
		fail(c, http.StatusInternalServerError, "生成PDF失败", err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=room_%d_bill.pdf", roomID))
	if err := pdf.Output(c.Writer); err != nil {
		logger.Error("写出PDF失败: %v", err)
	}
}

// Summary 全局营收报表，start/end 为模拟时钟上的可选过滤参数
func (h *BillingHandler) Summary(c *gin.Context) {
	start, okStart := optionalFloatQuery(c, "start")
	if !okStart {
		return
	}
	end, okEnd := optionalFloatQuery(c, "end")
	if !okEnd {
		return
	}
	totals, err := h.svc.SummaryReport(start, end)
	if err != nil {
		fail(c, http.StatusInternalServerError, "生成报表失败", err)
		return
	}
	ok(c, "查询成功", totals)
}

func optionalFloatQuery(c *gin.Context, key string) (*float64, bool) {
	raw, exists := c.GetQuery(key)
	if !exists {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "无效的查询参数 "+key, err)
		return nil, false
	}
	return &v, true
}
