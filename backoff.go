package spinlock

import (
	"github.com/brickingsoft/spinlock/internal/relax"
	"math/rand/v2"
)

// Backoff
// 截断二进制指数退避。
//
// 由一次获取独占，不可共享。delay 从 MinSpin 开始，每次失败翻倍，截断于 MaxSpin。
type Backoff struct {
	delay   uint64
	minSpin uint64
	maxSpin uint64
	jitter  bool
}

// NewBackoff
// 创建退避器
func NewBackoff(options ...Option) (*Backoff, error) {
	opts, err := LoadOptions(options...)
	if err != nil {
		return nil, err
	}
	b := newBackoff(opts)
	return &b, nil
}

func newBackoff(opts Options) Backoff {
	return Backoff{
		delay:   opts.MinSpin,
		minSpin: opts.MinSpin,
		maxSpin: opts.MaxSpin,
		jitter:  opts.Jitter,
	}
}

// Delay
// 当前自旋次数
func (b *Backoff) Delay() uint64 {
	return b.delay
}

// Spin
// 忙等 delay 次，每次执行一次处理器让步提示，不读取锁字。
// 返回实际执行的次数，无抖动时等于 delay。
func (b *Backoff) Spin() uint64 {
	assertDelay(b.delay, b.minSpin, b.maxSpin)
	n := b.delay
	if b.jitter {
		half := n / 2
		n = half + rand.Uint64N(n-half+1)
	}
	i := uint64(0)
	for ; i < n; i++ {
		relax.Pause()
	}
	return i
}

// OnFailure
// delay = min(MaxSpin, delay * 2)
func (b *Backoff) OnFailure() {
	if b.delay > b.maxSpin/2 {
		b.delay = b.maxSpin
		return
	}
	b.delay <<= 1
}

// Clone
// 复制一个使用相同区间与抖动设置的新 Backoff，delay 从 MinSpin 开始
func (b *Backoff) Clone() *Backoff {
	c := *b
	c.delay = c.minSpin
	return &c
}

// Reset
// 回到 MinSpin
func (b *Backoff) Reset() {
	b.delay = b.minSpin
}
