package debounce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebounce(t *testing.T) {
	// 测试1: 窗口内的后继指令覆盖参数，保留首条的时间戳
	t.Run("Merge Within Window", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 0.3, Value: 23.0},
			{Timestamp: 1.5, Value: 22.0},
		}
		out := Debounce(in)
		assert.Equal(t, []Command{
			{Timestamp: 0.0, Value: 23.0},
			{Timestamp: 1.5, Value: 22.0},
		}, out)
	})

	// 测试2: 连续快速拖动合并成一条
	t.Run("Rapid Burst", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 0.2, Value: 23.5},
			{Timestamp: 0.4, Value: 23.0},
			{Timestamp: 0.6, Value: 22.5},
		}
		out := Debounce(in)
		assert.Equal(t, []Command{{Timestamp: 0.0, Value: 22.5}}, out)
	})

	// 测试3: 窗口以保留指令为基准，不随覆盖滑动
	t.Run("Window Anchored To Kept Command", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 0.9, Value: 23.0},
			{Timestamp: 1.0, Value: 22.0}, // 距 0.0 已满一个窗口
		}
		out := Debounce(in)
		assert.Equal(t, []Command{
			{Timestamp: 0.0, Value: 23.0},
			{Timestamp: 1.0, Value: 22.0},
		}, out)
	})

	// 测试4: 间隔都够大时原样保留
	t.Run("No Merge", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 2.0, Value: 23.0},
			{Timestamp: 4.0, Value: 22.0},
		}
		assert.Equal(t, in, Debounce(in))
	})

	// 测试5: 空输入与单条输入
	t.Run("Trivial Inputs", func(t *testing.T) {
		assert.Nil(t, Debounce(nil))
		assert.Nil(t, Debounce([]Command{}))

		single := []Command{{Timestamp: 1.0, Value: 25.0}}
		assert.Equal(t, single, Debounce(single))
	})

	// 测试6: 幂等性，过滤结果再过滤不变
	t.Run("Idempotent", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 0.5, Value: 23.0},
			{Timestamp: 1.2, Value: 22.0},
			{Timestamp: 1.4, Value: 21.0},
			{Timestamp: 3.0, Value: 20.0},
		}
		once := Debounce(in)
		assert.Equal(t, once, Debounce(once))
	})

	// 测试7: 不修改调用方的切片
	t.Run("Input Untouched", func(t *testing.T) {
		in := []Command{
			{Timestamp: 0.0, Value: 24.0},
			{Timestamp: 0.3, Value: 23.0},
		}
		Debounce(in)
		assert.Equal(t, 24.0, in[0].Value)
	})
}
