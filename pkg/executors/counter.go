package executors

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

const (
	ns500 = 500 * time.Nanosecond
)

type counter struct {
	n atomic.Int64
}

func (c *counter) Incr() int64 {
	return c.n.Add(1)
}

func (c *counter) Decr() int64 {
	return c.n.Add(-1)
}

func (c *counter) Value() int64 {
	return c.n.Load()
}

// WaitDownTo
// 等待计数降到 n 以下，ctx 结束时返回 ctx 的错误。
func (c *counter) WaitDownTo(ctx context.Context, n int64) (err error) {
	times := 10
	for {
		if c.Value() <= n {
			return
		}
		if err = ctx.Err(); err != nil {
			return
		}
		time.Sleep(ns500)
		times--
		if times < 1 {
			times = 10
			runtime.Gosched()
		}
	}
}
