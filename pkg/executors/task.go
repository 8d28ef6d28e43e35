package executors

import (
	"context"
	"fmt"
	"github.com/brickingsoft/errors"
)

// Task
// 任务
type Task interface {
	// Handle
	// 执行任务
	Handle(ctx context.Context)
}

// TaskFunc
// 函数形式的 Task
type TaskFunc func(ctx context.Context)

func (fn TaskFunc) Handle(ctx context.Context) {
	fn(ctx)
}

// Handle
// 已提交任务的句柄，可等待其结束。
type Handle interface {
	// Done
	// 任务结束（正常返回或 panic）后关闭
	Done() <-chan struct{}
	// Join
	// 等待任务结束。任务 panic 时返回 ErrPanicked，ctx 结束时返回 ctx 的错误。
	Join(ctx context.Context) (err error)
}

type handle struct {
	done      chan struct{}
	recovered interface{}
}

func newHandle() *handle {
	return &handle{
		done: make(chan struct{}),
	}
}

func (h *handle) Done() <-chan struct{} {
	return h.done
}

func (h *handle) Join(ctx context.Context) (err error) {
	select {
	case <-h.done:
		if h.recovered != nil {
			err = errors.From(ErrPanicked, errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(fmt.Errorf("%v", h.recovered)))
		}
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}
