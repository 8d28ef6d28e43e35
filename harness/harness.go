package harness

import (
	"context"
	"fmt"
	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/spinlock"
	"github.com/brickingsoft/spinlock/pkg/executors"
	"github.com/brickingsoft/spinlock/pkg/maxprocs"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Harness
// 争用测量驱动。
//
// 通过 executors 启动参与者，join 全部之后再汇总各自独占的 spinlock.Metrics。
type Harness struct {
	options Options
	backoff *spinlock.Backoff
	logger  *slog.Logger
}

// New
// 创建 Harness
func New(options ...Option) (*Harness, error) {
	opts := Options{
		Workers:       DefaultWorkers,
		Hold:          DefaultHold,
		ReleaseAfter:  DefaultReleaseAfter,
		ExternalHold:  0,
		BaselineLoops: DefaultBaselineLoops,
		Timeout:       0,
		MinGOMAXPROCS: 0,
		Backoff:       nil,
		Logger:        nil,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if optErr := option(&opts); optErr != nil {
			return nil, errors.New("new harness failed", errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(optErr))
		}
	}
	backoff, backoffErr := spinlock.NewBackoff(opts.Backoff...)
	if backoffErr != nil {
		return nil, errors.New("new harness failed", errors.WithMeta(errMetaPkgKey, errMetaPkgVal), errors.WithWrap(backoffErr))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if opts.Workers <= 0 {
		logger.Warn("invalid number of workers, using default", "requested", opts.Workers, "default", DefaultWorkers)
		opts.Workers = DefaultWorkers
	}
	return &Harness{
		options: opts,
		backoff: backoff,
		logger:  logger,
	}, nil
}

// Options
// 生效的选项
func (h *Harness) Options() Options {
	return h.options
}

// Run
// 按 mode 运行
func (h *Harness) Run(ctx context.Context, mode Mode) (*Result, error) {
	if mode == SingleMode {
		return h.RunSingle(ctx)
	}
	return h.RunMulti(ctx)
}

// RunSingle
// 单获取者模式。
//
// 锁开始时由 spinlock.SentinelHolder 持有，释放者在 ReleaseAfter 后释放；
// 调用者所在的协程（绑定系统线程）同时自旋获取。
func (h *Harness) RunSingle(ctx context.Context) (res *Result, err error) {
	undo := h.tuneProcs(1)
	defer undo()

	exec, release, execErr := h.executors(ctx)
	if execErr != nil {
		err = execErr
		return
	}
	defer release()

	runCtx, cancel := h.runContext(ctx)
	defer cancel()

	cell := spinlock.NewHeldCell(spinlock.SentinelHolder)
	releaser, releaserErr := h.spawnReleaser(runCtx, exec, cell, h.options.ReleaseAfter)
	if releaserErr != nil {
		err = releaserErr
		return
	}

	slot := WorkerResult{Index: 0}
	runtime.LockOSThread()
	h.work(runCtx, cell, &slot, 0)
	runtime.UnlockOSThread()

	if joinErr := releaser.Join(context.Background()); joinErr != nil {
		h.logger.Error("releaser failed", "error", joinErr)
	}

	res = &Result{Mode: SingleMode, Requested: 1}
	res.add(slot)
	h.logger.Info("single acquirer completed", "spins", res.TotalSpins)
	return
}

// RunMulti
// 多工作者模式。
//
// 启动 Workers 个工作者，每个工作者获取锁、持有 Hold、释放，然后运行对照空循环。
// 启动失败的工作者被排除，不会等待未取得的句柄。
func (h *Harness) RunMulti(ctx context.Context) (res *Result, err error) {
	workers := h.options.Workers
	undo := h.tuneProcs(workers)
	defer undo()

	exec, release, execErr := h.executors(ctx)
	if execErr != nil {
		err = execErr
		return
	}
	defer release()

	runCtx, cancel := h.runContext(ctx)
	defer cancel()

	cell := spinlock.NewCell()
	var releaser executors.Handle
	if hold := h.options.ExternalHold; hold > 0 {
		cell = spinlock.NewHeldCell(spinlock.SentinelHolder)
		if releaser, err = h.spawnReleaser(runCtx, exec, cell, hold); err != nil {
			return
		}
	}

	h.logger.Info("launching workers", "workers", workers)
	slots := make([]WorkerResult, workers)
	handles := make([]executors.Handle, workers)
	for i := range slots {
		slot := &slots[i]
		slot.Index = i
		handle, ok := exec.TryExecute(runCtx, executors.TaskFunc(func(ctx context.Context) {
			h.work(ctx, cell, slot, h.options.Hold)
		}))
		if !ok {
			h.logger.Error("failed to start worker", "worker", i+1)
			continue
		}
		handles[i] = handle
	}

	for i, handle := range handles {
		if handle == nil {
			continue
		}
		if joinErr := handle.Join(context.Background()); joinErr != nil {
			slots[i].Err = joinErr
			h.logger.Error("worker failed", "worker", i+1, "error", joinErr)
		}
	}
	if releaser != nil {
		if joinErr := releaser.Join(context.Background()); joinErr != nil {
			h.logger.Error("releaser failed", "error", joinErr)
		}
	}

	res = &Result{Mode: MultiMode, Requested: workers}
	for i, handle := range handles {
		if handle == nil {
			res.SpawnFailures = append(res.SpawnFailures, i)
			continue
		}
		res.add(slots[i])
	}
	h.logger.Info("all workers completed", "started", len(res.Workers), "spins", res.TotalSpins)
	return
}

// work 在当前协程上完成一次获取、持有、释放与对照循环，结果只写入 slot。
func (h *Harness) work(ctx context.Context, cell *spinlock.Cell, slot *WorkerResult, hold time.Duration) {
	id := spinlock.NextHolder()
	slot.Holder = id
	slot.ThreadID = threadID()
	log := h.logger.With("worker", slot.Index+1, "holder", uint64(id), "thread", slot.ThreadID)
	log.Debug("worker started")

	b := h.backoff.Clone()
	m := &slot.Metrics
	m.Begin()
	err := spinlock.AcquireContext(ctx, cell, id, b, m)
	m.End()
	if err != nil {
		slot.Err = err
		log.Warn("lock not acquired", "error", err, "spins", m.Spins, "backoffs", m.Backoffs)
		return
	}

	log.Info("lock acquired", "hold", hold, "spins", m.Spins, "backoffs", m.Backoffs)
	if hold > 0 {
		time.Sleep(hold)
	}
	cell.ReleaseAs(id)

	slot.Baseline = runBaseline(h.options.BaselineLoops)
	log.Debug("worker completed", "baseline_loops", slot.Baseline.Loops)
}

func (h *Harness) spawnReleaser(ctx context.Context, exec executors.Executors, cell *spinlock.Cell, after time.Duration) (executors.Handle, error) {
	handle, ok := exec.TryExecute(ctx, executors.TaskFunc(func(ctx context.Context) {
		timer := time.NewTimer(after)
		defer timer.Stop()
		select {
		case <-timer.C:
			cell.ReleaseAs(spinlock.SentinelHolder)
			h.logger.Debug("releaser released the lock", "after", after)
		case <-ctx.Done():
			// run aborted, the cell is abandoned while still held
			h.logger.Debug("releaser stopped", "error", ctx.Err())
		}
	}))
	if !ok {
		return nil, errors.From(ErrReleaserUnavailable, errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
	}
	return handle, nil
}

// executors 优先使用 ctx 中的 Executors，否则创建一个绑定系统线程的执行池，release 负责关闭它。
func (h *Harness) executors(ctx context.Context) (exec executors.Executors, release func(), err error) {
	if shared, ok := executors.TryFrom(ctx); ok {
		return shared, func() {}, nil
	}
	exec, err = executors.New(executors.WithContext(ctx), executors.WithLockOSThread(true))
	if err != nil {
		return
	}
	release = func() {
		if closeErr := exec.Close(); closeErr != nil {
			h.logger.Error("close executors failed", "error", closeErr)
		}
	}
	return
}

func (h *Harness) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := h.options.Timeout; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// tuneProcs 保证每个自旋者与释放者都有自己的 P。
func (h *Harness) tuneProcs(contenders int) maxprocs.Undo {
	minProcs := h.options.MinGOMAXPROCS
	if minProcs == 0 {
		minProcs = contenders + 1
	}
	undo, err := maxprocs.Enable(maxprocs.Options{
		MinGOMAXPROCS: minProcs,
		Logger: func(format string, args ...interface{}) {
			h.logger.Debug(fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		h.logger.Warn("tune GOMAXPROCS failed", "error", err)
	}
	h.logger.Debug("GOMAXPROCS", "value", runtime.GOMAXPROCS(0))
	return undo
}
