package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/billing"
	"backend/internal/engine"
)

// 内存台账上的最小 HTTP 布置，不碰数据库
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := engine.DefaultConfig()
	cfg.RoomCount = 2
	cfg.ServiceCapacity = 1
	cfg.InitialTemps = map[int]float64{1: 30, 2: 28}
	eng := engine.New(cfg, billing.NewMemoryLedger(), nil)

	h := NewACHandler(eng, cfg.DefaultTargetTemp)
	router := gin.New()
	router.GET("/api/rooms", h.AllStatus)
	router.GET("/api/rooms/:id/status", h.Status)
	router.POST("/api/rooms/:id/power-on", h.PowerOn)
	router.POST("/api/rooms/:id/power-off", h.PowerOff)
	router.POST("/api/rooms/:id/temperature", h.SetTemperature)
	router.POST("/api/rooms/:id/fan-speed", h.SetFanSpeed)
	router.POST("/api/simulation/tick", h.Tick)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestACHandler(t *testing.T) {
	// 测试1: 开机-查询-关机的完整回路
	t.Run("Power Cycle", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "high", "target_temp": 24,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Code int `json:"code"`
			Data struct {
				PowerState string  `json:"power_state"`
				QueueState string  `json:"queue_state"`
				TargetTemp float64 `json:"target_temp"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "active", resp.Data.PowerState)
		assert.Equal(t, "serving", resp.Data.QueueState)
		assert.Equal(t, 24.0, resp.Data.TargetTemp)

		w = doJSON(t, router, http.MethodPost, "/api/rooms/1/power-off", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		// 重复关机报 400
		w = doJSON(t, router, http.MethodPost, "/api/rooms/1/power-off", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// 测试2: 不存在的房间报 404
	t.Run("Unknown Room", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/rooms/99/power-on", gin.H{
			"mode": "cooling", "fan_speed": "high",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	// 测试3: 非法风速报 400
	t.Run("Invalid Speed", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "turbo",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// 测试4: 缺省目标温度用系统默认值
	t.Run("Default Target", func(t *testing.T) {
		router := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "medium",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				TargetTemp float64 `json:"target_temp"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 25.0, resp.Data.TargetTemp)
	})

	// 测试5: 连续拖动的调温指令先消抖再下发
	t.Run("Debounced Temperature Commands", func(t *testing.T) {
		router := newTestRouter(t)

		doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "medium",
		})
		w := doJSON(t, router, http.MethodPost, "/api/rooms/1/temperature", gin.H{
			"commands": []gin.H{
				{"timestamp": 0.0, "value": 24.0},
				{"timestamp": 0.3, "value": 23.0},
				{"timestamp": 1.5, "value": 22.0},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data struct {
				TargetTemp float64 `json:"target_temp"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 22.0, resp.Data.TargetTemp, "最终生效的是最后一条保留指令")
	})

	// 测试6: 调温请求两个字段都缺报 400
	t.Run("Temperature Missing Fields", func(t *testing.T) {
		router := newTestRouter(t)

		doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "medium",
		})
		w := doJSON(t, router, http.MethodPost, "/api/rooms/1/temperature", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// 测试7: 推进时钟并驱动抢占后的状态可见
	t.Run("Tick And Snapshot", func(t *testing.T) {
		router := newTestRouter(t)

		doJSON(t, router, http.MethodPost, "/api/rooms/1/power-on", gin.H{
			"mode": "cooling", "fan_speed": "low",
		})
		doJSON(t, router, http.MethodPost, "/api/rooms/2/power-on", gin.H{
			"mode": "cooling", "fan_speed": "high",
		})

		w := doJSON(t, router, http.MethodPost, "/api/simulation/tick", gin.H{
			"delta_seconds": 60,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				ClockSeconds float64 `json:"clock_seconds"`
				Serving      []int   `json:"serving"`
				Waiting      []int   `json:"waiting"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 60.0, resp.Data.ClockSeconds)
		assert.Equal(t, []int{2}, resp.Data.Serving, "高风抢占唯一的服务位")
		assert.Equal(t, []int{1}, resp.Data.Waiting)

		// 负增量报 400
		w = doJSON(t, router, http.MethodPost, "/api/simulation/tick", gin.H{
			"delta_seconds": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
