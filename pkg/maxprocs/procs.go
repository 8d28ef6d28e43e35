package maxprocs

import (
	automaxprocs "go.uber.org/automaxprocs/maxprocs"
	"os"
	"runtime"
)

const maxProcsEnvKey = "GOMAXPROCS"

// Options
// GOMAXPROCS 选项
type Options struct {
	// MinGOMAXPROCS
	// GOMAXPROCS 下限。自旋测量需要每个自旋者独占一个 P，因此即使没有容器配额也会抬升到该值。
	MinGOMAXPROCS int
	// RoundQuotaFunc
	// 配额取整函数，nil 时向下取整
	RoundQuotaFunc func(v float64) int
	// Logger
	// 可选日志，语义同 log.Printf
	Logger func(format string, args ...interface{})
}

// Undo
// 恢复到 Enable 之前的 GOMAXPROCS
type Undo func()

// Enable
// 按容器 CPU 配额设置 GOMAXPROCS，并保证不低于 MinGOMAXPROCS。
//
// 环境变量 GOMAXPROCS 存在时不做任何修改。
func Enable(options Options) (undo Undo, err error) {
	undo = func() {}

	if _, exists := os.LookupEnv(maxProcsEnvKey); exists {
		return
	}

	minGOMAXPROCS := options.MinGOMAXPROCS
	if minGOMAXPROCS < 1 {
		minGOMAXPROCS = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	opts := []automaxprocs.Option{
		automaxprocs.Min(minGOMAXPROCS),
		automaxprocs.Logger(logger),
	}
	if options.RoundQuotaFunc != nil {
		opts = append(opts, automaxprocs.RoundQuotaFunc(options.RoundQuotaFunc))
	}

	prev := runtime.GOMAXPROCS(0)
	reset, setErr := automaxprocs.Set(opts...)
	if setErr != nil {
		reset()
		err = setErr
		return
	}

	if runtime.GOMAXPROCS(0) < minGOMAXPROCS {
		runtime.GOMAXPROCS(minGOMAXPROCS)
	}
	undo = func() {
		runtime.GOMAXPROCS(prev)
	}
	return
}
