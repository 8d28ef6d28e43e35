package harness

import (
	"fmt"
	"github.com/brickingsoft/spinlock"
	"log/slog"
	"time"
)

const (
	// DefaultWorkers
	// 多工作者模式默认工作者数
	DefaultWorkers = 4
	// DefaultHold
	// 默认临界区持有时长
	DefaultHold = 3 * time.Second
	// DefaultReleaseAfter
	// 单获取者模式下释放者默认持有时长
	DefaultReleaseAfter = 5 * time.Second
	// DefaultBaselineLoops
	// 对照空循环默认次数
	DefaultBaselineLoops = spinlock.DefaultMaxSpin * 10
)

// Option
// 选项函数
type Option func(*Options) error

// Options
// 选项
type Options struct {
	// Workers
	// 多工作者模式的工作者数，非正数时使用 DefaultWorkers
	Workers int
	// Hold
	// 工作者获得锁后模拟临界区的时长
	Hold time.Duration
	// ReleaseAfter
	// 单获取者模式下，释放者持有锁的时长
	ReleaseAfter time.Duration
	// ExternalHold
	// 多工作者模式下，锁在开始时被外部持有的时长，0 表示开始时空闲
	ExternalHold time.Duration
	// BaselineLoops
	// 对照空循环次数
	BaselineLoops uint64
	// Timeout
	// 整次运行的时限，0 表示不限（基准测量的默认行为）
	Timeout time.Duration
	// MinGOMAXPROCS
	// 运行期间 GOMAXPROCS 的下限，0 表示 参与者数 + 1
	MinGOMAXPROCS int
	// Backoff
	// 退避选项
	Backoff []spinlock.Option
	// Logger
	// 日志
	Logger *slog.Logger
}

// WithWorkers
// 设置工作者数
func WithWorkers(n int) Option {
	return func(o *Options) error {
		o.Workers = n
		return nil
	}
}

// WithHold
// 设置临界区持有时长
func WithHold(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("harness: hold cannot be negative")
		}
		o.Hold = d
		return nil
	}
}

// WithReleaseAfter
// 设置单获取者模式下的释放延迟
func WithReleaseAfter(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("harness: release delay cannot be negative")
		}
		o.ReleaseAfter = d
		return nil
	}
}

// WithExternalHold
// 设置多工作者模式下锁被外部持有的时长
func WithExternalHold(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("harness: external hold cannot be negative")
		}
		o.ExternalHold = d
		return nil
	}
}

// WithBaselineLoops
// 设置对照空循环次数
func WithBaselineLoops(n uint64) Option {
	return func(o *Options) error {
		o.BaselineLoops = n
		return nil
	}
}

// WithTimeout
// 设置整次运行的时限
func WithTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d < 1 {
			d = 0
		}
		o.Timeout = d
		return nil
	}
}

// WithMinGOMAXPROCS
// 设置 GOMAXPROCS 下限
func WithMinGOMAXPROCS(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			n = 0
		}
		o.MinGOMAXPROCS = n
		return nil
	}
}

// WithBackoff
// 设置退避选项
func WithBackoff(options ...spinlock.Option) Option {
	return func(o *Options) error {
		o.Backoff = append(o.Backoff, options...)
		return nil
	}
}

// WithLogger
// 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("harness: logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}
