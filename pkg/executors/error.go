package executors

import "github.com/brickingsoft/errors"

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "executors"
)

var (
	// ErrClosed 执行池已关闭
	ErrClosed = errors.Define("executors has been closed")
	// ErrCloseFailed 关闭执行池失败（一般是关闭超时引发）
	ErrCloseFailed = errors.Define("executors close failed")
	// ErrBusy 无可用协程
	ErrBusy = errors.Define("executors are busy")
	// ErrPanicked 任务发生 panic
	ErrPanicked = errors.Define("task panicked")
)

// IsClosed
// 是否为 ErrClosed 错误
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsBusy
// 是否为 ErrBusy 错误
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsPanicked
// 是否为 ErrPanicked 错误
func IsPanicked(err error) bool {
	return errors.Is(err, ErrPanicked)
}
