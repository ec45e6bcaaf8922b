// config/config.go

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"backend/internal/types"
)

// Config 应用整体配置
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port              int     `yaml:"port"`
	RateLimitPerSec   float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst    int     `yaml:"rate_limit_burst"`
	SessionTTLMinutes int     `yaml:"session_ttl_minutes"`
}

// SimulationConfig 模拟引擎在构造时一次性消费的参数，引擎生命周期内不变
type SimulationConfig struct {
	RoomCount          int     `yaml:"room_count"`
	ServiceCapacity    int     `yaml:"service_capacity"`
	TimeSliceSeconds   float64 `yaml:"time_slice_seconds"`
	PricePerEnergyUnit float64 `yaml:"price_per_energy_unit"`
	DefaultTargetTemp  float64 `yaml:"default_target_temp"`
	DefaultInitialTemp float64 `yaml:"default_initial_temp"`

	// 每个房间的初始温度，缺省的房间用 DefaultInitialTemp
	InitialTemps map[int]float64 `yaml:"initial_temps"`

	// 风速 -> 能耗（度/分钟）
	EnergyRates map[types.Speed]float64 `yaml:"energy_rates"`
	// 风速 -> 温度变化率系数（相对中风）
	TempRateFactors map[types.Speed]float64 `yaml:"temp_rate_factors"`

	CoolingRange types.TempRange `yaml:"-"`
	HeatingRange types.TempRange `yaml:"-"`

	CoolingRangeRaw []float64 `yaml:"cooling_range"`
	HeatingRangeRaw []float64 `yaml:"heating_range"`
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default 返回内置缺省配置，配置文件不存在时直接可用
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load 从 path 读取配置，读不到文件时退回缺省配置
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 50
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 100
	}
	if cfg.Server.SessionTTLMinutes <= 0 {
		cfg.Server.SessionTTLMinutes = 60
	}

	sim := &cfg.Simulation
	if sim.RoomCount <= 0 {
		sim.RoomCount = 5
	}
	if sim.ServiceCapacity <= 0 {
		sim.ServiceCapacity = 3
	}
	if sim.TimeSliceSeconds <= 0 {
		sim.TimeSliceSeconds = 120
	}
	if sim.PricePerEnergyUnit <= 0 {
		sim.PricePerEnergyUnit = 1.0
	}
	if sim.DefaultTargetTemp == 0 {
		sim.DefaultTargetTemp = 25.0
	}
	if sim.DefaultInitialTemp == 0 {
		sim.DefaultInitialTemp = 25.0
	}
	if sim.EnergyRates == nil {
		sim.EnergyRates = map[types.Speed]float64{
			types.SpeedHigh:   1.0,
			types.SpeedMedium: 0.5,
			types.SpeedLow:    1.0 / 3.0,
		}
	}
	if sim.TempRateFactors == nil {
		sim.TempRateFactors = map[types.Speed]float64{
			types.SpeedHigh:   1.2,
			types.SpeedMedium: 1.0,
			types.SpeedLow:    0.8,
		}
	}
	sim.CoolingRange = rangeFromRaw(sim.CoolingRangeRaw, types.TempRange{Min: 18, Max: 25})
	sim.HeatingRange = rangeFromRaw(sim.HeatingRangeRaw, types.TempRange{Min: 25, Max: 30})

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "hotel_ac.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func rangeFromRaw(raw []float64, fallback types.TempRange) types.TempRange {
	if len(raw) != 2 || raw[0] >= raw[1] {
		return fallback
	}
	return types.TempRange{Min: raw[0], Max: raw[1]}
}
