// internal/debounce/debounce.go
// Package debounce 把一条控制通道上的连续快速指令合并成规范序列。
// 纯函数，无跨调用状态，可随时重入。
package debounce

// Window 防抖窗口（秒）：与上一条保留指令间隔小于该值的指令只覆盖其参数
const Window = 1.0

// Command 一条带时间戳的控制指令，时间戳为非递减的秒数
type Command struct {
	Timestamp float64 `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Debounce 过滤指令序列：
// 与最后一条已保留指令的时间差 < Window 时，用新参数覆盖该条（时间戳不变）；
// 否则追加为新指令。输出保持输入顺序，长度不超过输入。
func Debounce(commands []Command) []Command {
	if len(commands) == 0 {
		return nil
	}

	result := make([]Command, 0, len(commands))
	result = append(result, commands[0])

	for _, cmd := range commands[1:] {
		last := &result[len(result)-1]
		if cmd.Timestamp-last.Timestamp < Window {
			last.Value = cmd.Value
		} else {
			result = append(result, cmd)
		}
	}
	return result
}
