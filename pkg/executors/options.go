package executors

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultMaxGoroutines = 256 * 1024
)

// Option
// 选项函数
type Option func(*Options) error

// Options
// 选项
type Options struct {
	// Ctx
	// 根上下文
	Ctx context.Context
	// MaxGoroutines
	// 最大协程数，超出后 TryExecute 失败
	MaxGoroutines int
	// CloseTimeout
	// 关闭超时时长
	CloseTimeout time.Duration
	// LockOSThread
	// 是否将每个任务绑定到独立的系统线程
	LockOSThread bool
	// PanicHandler
	// 任务 panic 处理，nil 时仅记录在 Handle 上
	PanicHandler func(v interface{})
}

// WithContext
// 设置根上下文
func WithContext(ctx context.Context) Option {
	return func(o *Options) error {
		if ctx == nil {
			return fmt.Errorf("executors: context cannot be nil")
		}
		o.Ctx = ctx
		return nil
	}
}

// WithMaxGoroutines
// 设置最大协程数
func WithMaxGoroutines(n int) Option {
	return func(o *Options) error {
		if n < 1 {
			n = defaultMaxGoroutines
		}
		o.MaxGoroutines = n
		return nil
	}
}

// WithCloseTimeout
// 设置关闭超时时长
func WithCloseTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout < 1 {
			timeout = 0
		}
		o.CloseTimeout = timeout
		return nil
	}
}

// WithLockOSThread
// 设置任务是否绑定系统线程
func WithLockOSThread(lock bool) Option {
	return func(o *Options) error {
		o.LockOSThread = lock
		return nil
	}
}

// WithPanicHandler
// 设置 panic 处理
func WithPanicHandler(fn func(v interface{})) Option {
	return func(o *Options) error {
		o.PanicHandler = fn
		return nil
	}
}
