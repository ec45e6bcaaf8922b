package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"backend/internal/handlers"
	"backend/middleware"
)

func SetupRouter(
	acHandler *handlers.ACHandler,
	roomHandler *handlers.RoomHandler,
	billingHandler *handlers.BillingHandler,
	authHandler *handlers.AuthHandler,
	rateLimitPerSec float64,
	rateLimitBurst int,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimiter(rate.Limit(rateLimitPerSec), rateLimitBurst))

	authRequired := middleware.Auth(func(token string) (string, bool) {
		sess, found := authHandler.LookupSession(token)
		return sess.Identity, found
	})

	apiGroup := router.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// 房间空调控制面板
		roomGroup := apiGroup.Group("/rooms")
		{
			roomGroup.GET("", acHandler.AllStatus)
			roomGroup.GET("/:id/status", acHandler.Status)
			roomGroup.POST("/:id/power-on", acHandler.PowerOn)
			roomGroup.POST("/:id/power-off", acHandler.PowerOff)
			roomGroup.POST("/:id/temperature", acHandler.SetTemperature)
			roomGroup.POST("/:id/fan-speed", acHandler.SetFanSpeed)
		}

		// 前台与账务，需要登录
		desk := apiGroup.Group("", authRequired)
		{
			desk.POST("/rooms/:id/checkin", roomHandler.Checkin)
			desk.POST("/rooms/:id/checkout", roomHandler.Checkout)
			desk.GET("/checkins", roomHandler.ActiveCheckins)
			desk.GET("/rooms/:id/bill", billingHandler.Bill)
			desk.GET("/rooms/:id/details", billingHandler.Details)
			desk.GET("/rooms/:id/bill/pdf", billingHandler.BillPDF)
			desk.GET("/report/summary", billingHandler.Summary)
		}

		// 模拟时钟推进
		apiGroup.POST("/simulation/tick", acHandler.Tick)
	}

	return router
}
