package spinlock

import (
	"context"
	"github.com/brickingsoft/errors"
)

// Prober
// 单次获取尝试，Cell 实现了该接口。
type Prober interface {
	TryAcquire(id HolderID) bool
}

// Acquire
// 自旋直到获取成功。
//
// 每轮先自旋 b.Spin()，再尝试一次 p.TryAcquire(id)；失败则退避并计数。
// 没有超时、取消与重试上限，只会在成功后返回。
// 自旋次数与退避次数累加到调用者独占的 m 中。
func Acquire(p Prober, id HolderID, b *Backoff, m *Metrics) {
	for {
		m.Spins += b.Spin()
		if p.TryAcquire(id) {
			return
		}
		b.OnFailure()
		m.Backoffs++
	}
}

// AcquireContext
// 与 Acquire 相同，但每次失败后检查 ctx，ctx 结束时返回 ErrAcquireCanceled。
//
// ctx 没有 Done 通道时等同于 Acquire。
func AcquireContext(ctx context.Context, p Prober, id HolderID, b *Backoff, m *Metrics) (err error) {
	done := ctx.Done()
	if done == nil {
		Acquire(p, id, b, m)
		return
	}
	for {
		m.Spins += b.Spin()
		if p.TryAcquire(id) {
			return
		}
		b.OnFailure()
		m.Backoffs++
		select {
		case <-done:
			err = errors.From(ErrAcquireCanceled, errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(ctx.Err()))
			return
		default:
		}
	}
}
