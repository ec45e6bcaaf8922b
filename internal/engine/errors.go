// internal/engine/errors.go

package engine

import "errors"

// 引擎的错误分类。所有错误同步返回给调用方，内部不重试；
// 校验先于任何状态修改，单次调用要么全部生效要么毫无副作用。
var (
	ErrUnknownRoom       = errors.New("unknown room")
	ErrInvalidFanSpeed   = errors.New("invalid fan speed")
	ErrInvalidMode       = errors.New("invalid mode")
	ErrNotPoweredOn      = errors.New("room not powered on")
	ErrNegativeTimeDelta = errors.New("negative time delta")
)
