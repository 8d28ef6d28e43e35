package spinlock

import "github.com/brickingsoft/errors"

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "spinlock"
)

var (
	// ErrAcquireCanceled 获取锁在成功前被 context.Context 终止（超时或取消）
	ErrAcquireCanceled = errors.Define("acquire canceled before the lock was obtained")
	// ErrInvalidSpinRange 自旋区间非法，MinSpin 必须大于 0 且不大于 MaxSpin
	ErrInvalidSpinRange = errors.Define("invalid spin range")
)

// IsAcquireCanceled
// 是否为 ErrAcquireCanceled 错误
func IsAcquireCanceled(err error) bool {
	return errors.Is(err, ErrAcquireCanceled)
}

// IsInvalidSpinRange
// 是否为 ErrInvalidSpinRange 错误
func IsInvalidSpinRange(err error) bool {
	return errors.Is(err, ErrInvalidSpinRange)
}
