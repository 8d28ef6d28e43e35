package harness

import (
	"github.com/brickingsoft/spinlock"
	"time"
)

// Mode
// 运行模式
type Mode int

const (
	// SingleMode
	// 单获取者模式：一个获取者与一个定时释放者。
	SingleMode Mode = iota
	// MultiMode
	// 多工作者模式：N 个对称工作者争用同一把锁。
	MultiMode
)

func (mode Mode) String() string {
	switch mode {
	case SingleMode:
		return "single"
	case MultiMode:
		return "multi"
	default:
		return "unknown"
	}
}

// Baseline
// 无让步提示的对照空循环结果
type Baseline struct {
	Loops         uint64
	HighResMicros int64
}

// Millis
// 耗时（毫秒）
func (b Baseline) Millis() int64 {
	return b.HighResMicros / 1000
}

// LoopsPerMilli
// Loops / max(1, Millis)
func (b Baseline) LoopsPerMilli() uint64 {
	ms := b.Millis()
	if ms < 1 {
		ms = 1
	}
	return b.Loops / uint64(ms)
}

func runBaseline(loops uint64) Baseline {
	begin := time.Now()
	i := uint64(0)
	for ; i < loops; i++ {
	}
	return Baseline{
		Loops:         i,
		HighResMicros: time.Since(begin).Microseconds(),
	}
}

// WorkerResult
// 一个工作者的结果，仅在该工作者结束后可读。
type WorkerResult struct {
	// Index
	// 从 0 开始的工作者序号
	Index int
	// Holder
	// 获取锁时使用的持有者标识
	Holder spinlock.HolderID
	// ThreadID
	// 系统线程号，不支持的平台为 0
	ThreadID int
	// Metrics
	// 获取过程的计数与计时
	Metrics spinlock.Metrics
	// Baseline
	// 对照空循环
	Baseline Baseline
	// Err
	// 获取被时限打断或工作者 panic 时非空
	Err error
}

// Result
// 一次运行的汇总
type Result struct {
	Mode Mode
	// Requested
	// 请求的参与者数
	Requested int
	// Workers
	// 成功启动的工作者，按序号排列
	Workers []WorkerResult
	// SpawnFailures
	// 启动失败而被排除的工作者序号
	SpawnFailures []int
	// TotalSpins
	// 所有已启动工作者的 Spins 之和
	TotalSpins uint64
}

func (res *Result) add(w WorkerResult) {
	res.Workers = append(res.Workers, w)
	res.TotalSpins += w.Metrics.Spins
}
