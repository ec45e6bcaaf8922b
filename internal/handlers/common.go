package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/engine"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"err,omitempty"`
}

func ok(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 200, Msg: msg, Data: data})
}

func fail(c *gin.Context, status int, msg string, err error) {
	resp := Response{Code: status, Msg: msg}
	if err != nil {
		resp.Err = err.Error()
	}
	c.JSON(status, resp)
}

// failEngine 把引擎错误映射到 HTTP 状态码
func failEngine(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownRoom):
		fail(c, http.StatusNotFound, "房间不存在", err)
	case errors.Is(err, engine.ErrNotPoweredOn):
		fail(c, http.StatusBadRequest, "空调未开启", err)
	case errors.Is(err, engine.ErrInvalidFanSpeed),
		errors.Is(err, engine.ErrInvalidMode),
		errors.Is(err, engine.ErrNegativeTimeDelta):
		fail(c, http.StatusBadRequest, "参数无效", err)
	default:
		fail(c, http.StatusInternalServerError, "内部错误", err)
	}
}

// roomIDParam 解析路径中的房间号
func roomIDParam(c *gin.Context) (int, bool) {
	var uri struct {
		RoomID int `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, "无效的房间号", err)
		return 0, false
	}
	return uri.RoomID, true
}
