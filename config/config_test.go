package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Simulation.RoomCount)
	assert.Equal(t, 3, cfg.Simulation.ServiceCapacity)
	assert.Equal(t, 120.0, cfg.Simulation.TimeSliceSeconds)
	assert.Equal(t, 1.0, cfg.Simulation.PricePerEnergyUnit)
	assert.Equal(t, types.TempRange{Min: 18, Max: 25}, cfg.Simulation.CoolingRange)
	assert.Equal(t, types.TempRange{Min: 25, Max: 30}, cfg.Simulation.HeatingRange)
	assert.Equal(t, "hotel_ac.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.InDelta(t, 1.0/3.0, cfg.Simulation.EnergyRates[types.SpeedLow], 1e-9)
	assert.Equal(t, 1.2, cfg.Simulation.TempRateFactors[types.SpeedHigh])
}

func TestLoad(t *testing.T) {
	// 测试1: 文件不存在时退回缺省配置
	t.Run("Missing File", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	// 测试2: 部分配置与缺省值合并
	t.Run("Partial Override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		raw := `
server:
  port: 9090
simulation:
  room_count: 10
  service_capacity: 2
  initial_temps:
    1: 32.0
    5: 35.0
  cooling_range: [16, 24]
database:
  dsn: test.db
`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Simulation.RoomCount)
		assert.Equal(t, 2, cfg.Simulation.ServiceCapacity)
		assert.Equal(t, 32.0, cfg.Simulation.InitialTemps[1])
		assert.Equal(t, types.TempRange{Min: 16, Max: 24}, cfg.Simulation.CoolingRange)
		assert.Equal(t, "test.db", cfg.Database.DSN)

		// 未覆盖的字段落回缺省值
		assert.Equal(t, 120.0, cfg.Simulation.TimeSliceSeconds)
		assert.Equal(t, types.TempRange{Min: 25, Max: 30}, cfg.Simulation.HeatingRange)
	})

	// 测试3: 非法温度区间退回缺省区间
	t.Run("Invalid Range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		raw := `
simulation:
  cooling_range: [25, 18]
`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, types.TempRange{Min: 18, Max: 25}, cfg.Simulation.CoolingRange)
	})

	// 测试4: 语法错误的配置文件报错
	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
