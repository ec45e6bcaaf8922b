package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"backend/config"
	"backend/internal/app"
	"backend/internal/logger"
)

func main() {
	// .env 不存在不报错，环境变量只做本地覆盖
	_ = godotenv.Load()

	configPath := os.Getenv("AC_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("加载配置失败: %v", err)
		os.Exit(1)
	}
	if port := os.Getenv("AC_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}

	application := app.NewApp(cfg)
	if err := application.Initialize(); err != nil {
		logger.Error("初始化失败: %v", err)
		os.Exit(1)
	}
	if err := application.Start(); err != nil {
		logger.Error("启动失败: %v", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Stop(ctx); err != nil {
		logger.Error("退出失败: %v", err)
	}
}
