package spinlock

import (
	"fmt"
	"github.com/brickingsoft/errors"
)

const (
	// DefaultMinSpin
	// 默认初始自旋次数
	DefaultMinSpin uint64 = 250
	// DefaultMaxSpin
	// 默认最大自旋次数
	DefaultMaxSpin uint64 = 1_000_000
)

// Option
// 选项函数
type Option func(*Options) error

// Options
// 退避策略选项
type Options struct {
	// MinSpin
	// 初始自旋次数，每次失败后翻倍
	MinSpin uint64
	// MaxSpin
	// 自旋次数上限
	MaxSpin uint64
	// Jitter
	// 是否在 [delay/2, delay] 内随机自旋次数，用于打散同步重试。
	Jitter bool
}

// DefaultOptions
// 默认选项，无抖动。
func DefaultOptions() Options {
	return Options{
		MinSpin: DefaultMinSpin,
		MaxSpin: DefaultMaxSpin,
		Jitter:  false,
	}
}

// LoadOptions
// 在默认选项上应用 options 并校验。
func LoadOptions(options ...Option) (Options, error) {
	opts := DefaultOptions()
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(&opts); err != nil {
			return opts, err
		}
	}
	if opts.MinSpin == 0 || opts.MinSpin > opts.MaxSpin {
		return opts, errors.From(
			ErrInvalidSpinRange,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(fmt.Errorf("min spin %d, max spin %d", opts.MinSpin, opts.MaxSpin)),
		)
	}
	return opts, nil
}

// WithOptions
// 直接设置全部选项
func WithOptions(options Options) Option {
	return func(o *Options) error {
		*o = options
		return nil
	}
}

// WithMinSpin
// 设置初始自旋次数
func WithMinSpin(n uint64) Option {
	return func(o *Options) error {
		if n == 0 {
			return errors.From(ErrInvalidSpinRange, errors.WithWrap(fmt.Errorf("min spin cannot be zero")))
		}
		o.MinSpin = n
		return nil
	}
}

// WithMaxSpin
// 设置自旋次数上限
func WithMaxSpin(n uint64) Option {
	return func(o *Options) error {
		if n == 0 {
			return errors.From(ErrInvalidSpinRange, errors.WithWrap(fmt.Errorf("max spin cannot be zero")))
		}
		o.MaxSpin = n
		return nil
	}
}

// WithJitter
// 设置是否抖动
func WithJitter(jitter bool) Option {
	return func(o *Options) error {
		o.Jitter = jitter
		return nil
	}
}
