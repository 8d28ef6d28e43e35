package executors

import (
	"context"
	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/spinlock"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Executors
// 执行池
//
// 每个任务一个 goroutine，goroutine 数量受 MaxGoroutines 限制。提交成功后返回可 Join 的 Handle。
type Executors interface {
	// Context
	// 根上下文
	Context() context.Context
	// TryExecute
	// 尝试执行一个任务，如果 goroutine 已满载或已关闭，则返回 false。
	TryExecute(ctx context.Context, task Task) (h Handle, ok bool)
	// Execute
	// 执行一个任务，如果 goroutine 已满载，则等待有空闲的。
	//
	// 当 context.Context 有错误或者 Executors.Close，则返回错误。
	Execute(ctx context.Context, task Task) (h Handle, err error)
	// Goroutines
	// 当前 goroutine 数量
	Goroutines() (n int64)
	// Available
	// 是否存在剩余 goroutine 且运行中
	Available() bool
	// Running
	// 是否运行中
	Running() bool
	// Close
	// 优雅关闭
	//
	// 此关会等待正在运行的任务结束。
	// 如果需要关闭超时，则使用 WithCloseTimeout 进行设置。
	Close() (err error)
}

// New
// 创建执行池
func New(options ...Option) (Executors, error) {
	opts := Options{
		Ctx:           nil,
		MaxGoroutines: defaultMaxGoroutines,
		CloseTimeout:  0,
		LockOSThread:  false,
		PanicHandler:  nil,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if optErr := option(&opts); optErr != nil {
			return nil, errors.New("new executors failed", errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(optErr))
		}
	}
	rootCtx := opts.Ctx
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(rootCtx)
	exec := &executors{
		ctx:           nil,
		ctxCancel:     cancel,
		maxGoroutines: int64(opts.MaxGoroutines),
		locker:        spinlock.New(),
		running:       new(atomic.Bool),
		goroutines:    new(counter),
		closeTimeout:  opts.CloseTimeout,
		lockOSThread:  opts.LockOSThread,
		panicHandler:  opts.PanicHandler,
	}
	exec.ctx = With(ctx, exec)
	exec.running.Store(true)
	return exec, nil
}

type executors struct {
	ctx           context.Context
	ctxCancel     context.CancelFunc
	maxGoroutines int64
	locker        sync.Locker
	running       *atomic.Bool
	goroutines    *counter
	closeTimeout  time.Duration
	lockOSThread  bool
	panicHandler  func(v interface{})
}

func (exec *executors) Context() context.Context {
	return exec.ctx
}

func (exec *executors) TryExecute(ctx context.Context, task Task) (h Handle, ok bool) {
	if task == nil || !exec.running.Load() {
		return
	}
	exec.locker.Lock()
	if ok = exec.Available(); ok {
		exec.goroutines.Incr()
	}
	exec.locker.Unlock()
	if !ok {
		return
	}
	hd := newHandle()
	go exec.handle(ctx, task, hd)
	h = hd
	return
}

func (exec *executors) Execute(ctx context.Context, task Task) (h Handle, err error) {
	if task == nil {
		err = errors.New("task is nil", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
		return
	}
	times := 10
	ok := false
	for {
		if h, ok = exec.TryExecute(ctx, task); ok {
			return
		}
		if !exec.running.Load() {
			err = errors.From(ErrClosed)
			return
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.From(ErrBusy, errors.WithWrap(ctxErr))
			return
		}
		time.Sleep(ns500)
		times--
		if times < 0 {
			times = 10
			runtime.Gosched()
		}
	}
}

func (exec *executors) Goroutines() int64 {
	return exec.goroutines.Value()
}

func (exec *executors) Available() bool {
	return exec.running.Load() && exec.goroutines.Value() < exec.maxGoroutines
}

func (exec *executors) Running() bool {
	return exec.running.Load()
}

func (exec *executors) Close() (err error) {
	if ok := exec.running.CompareAndSwap(true, false); !ok {
		err = errors.New("executors already closed", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
		return
	}

	ctx := exec.ctx
	cancel := exec.ctxCancel
	defer cancel()

	waitCtx := context.WithoutCancel(ctx)
	if closeTimeout := exec.closeTimeout; closeTimeout > 0 {
		var waitCtxCancel context.CancelFunc
		waitCtx, waitCtxCancel = context.WithTimeout(waitCtx, closeTimeout)
		defer waitCtxCancel()
	}
	if waitErr := exec.goroutines.WaitDownTo(waitCtx, 0); waitErr != nil {
		err = errors.From(ErrCloseFailed, errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(waitErr))
		return
	}
	return
}

func (exec *executors) handle(ctx context.Context, task Task, h *handle) {
	if exec.lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	defer func() {
		if r := recover(); r != nil {
			h.recovered = r
			if ph := exec.panicHandler; ph != nil {
				ph(r)
			}
		}
		close(h.done)
		exec.goroutines.Decr()
	}()
	task.Handle(ctx)
}
