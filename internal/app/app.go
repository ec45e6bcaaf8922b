package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"backend/api"
	"backend/config"
	"backend/internal/billing"
	"backend/internal/db"
	"backend/internal/engine"
	"backend/internal/events"
	"backend/internal/handlers"
	"backend/internal/logger"
	"backend/internal/monitor"
	"backend/internal/thermal"
)

// App 组装配置、数据库、引擎与 HTTP 服务
type App struct {
	cfg     *config.Config
	engine  *engine.Engine
	monitor *monitor.Monitor
	server  *http.Server
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

func (a *App) Initialize() error {
	logger.SetLevel(logger.ParseLevel(a.cfg.Logging.Level))

	if err := db.Init(a.cfg.Database.DSN); err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}

	sim := a.cfg.Simulation
	engineCfg := engine.Config{
		RoomCount:          sim.RoomCount,
		ServiceCapacity:    sim.ServiceCapacity,
		TimeSliceSeconds:   sim.TimeSliceSeconds,
		DefaultTargetTemp:  sim.DefaultTargetTemp,
		DefaultInitialTemp: sim.DefaultInitialTemp,
		InitialTemps:       sim.InitialTemps,
		CoolingRange:       sim.CoolingRange,
		HeatingRange:       sim.HeatingRange,
		Thermal: thermal.Params{
			EnergyRates:        sim.EnergyRates,
			TempRateFactors:    sim.TempRateFactors,
			PricePerEnergyUnit: sim.PricePerEnergyUnit,
		},
	}

	ledger := db.NewGormLedger(db.DB)
	bus := events.NewBus()
	a.engine = engine.New(engineCfg, ledger, bus)
	a.monitor = monitor.New(a.engine, bus, 5*time.Second)

	billingSvc := billing.NewService(ledger)
	userRepo := db.NewUserRepository(db.DB)
	checkinRepo := db.NewCheckinRepository(db.DB)

	acHandler := handlers.NewACHandler(a.engine, sim.DefaultTargetTemp)
	roomHandler := handlers.NewRoomHandler(a.engine, checkinRepo, billingSvc)
	billingHandler := handlers.NewBillingHandler(billingSvc)
	authHandler := handlers.NewAuthHandler(userRepo,
		time.Duration(a.cfg.Server.SessionTTLMinutes)*time.Minute)

	router := api.SetupRouter(acHandler, roomHandler, billingHandler, authHandler,
		a.cfg.Server.RateLimitPerSec, a.cfg.Server.RateLimitBurst)

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: router,
	}
	return nil
}

func (a *App) Start() error {
	a.monitor.Start()

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP 服务异常退出: %v", err)
		}
	}()

	logger.Info("服务启动，监听端口 %d，房间 %d 间，服务容量 %d",
		a.cfg.Server.Port, a.cfg.Simulation.RoomCount, a.cfg.Simulation.ServiceCapacity)
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	a.monitor.Stop()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭 HTTP 服务失败: %w", err)
	}
	logger.Info("服务已优雅退出")
	return nil
}
