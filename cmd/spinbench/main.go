// spinbench
// 截断指数退避自旋锁的竞争测试命令。
//
//	spinbench [flags] [workers]
//
// multi 模式（默认）下可选的位置参数为竞争的工作者数量；single 模式下一个获取者与定时释放者竞争。
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/brickingsoft/spinlock"
	"github.com/brickingsoft/spinlock/harness"
	"github.com/brickingsoft/spinlock/harness/report"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type config struct {
	mode         string
	workers      int
	hold         time.Duration
	releaseAfter time.Duration
	externalHold time.Duration
	baseline     uint64
	minSpin      uint64
	maxSpin      uint64
	jitter       bool
	timeout      time.Duration
	minProcs     int
	verbose      bool
}

func main() {
	cfg := parseArguments()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mode := harness.MultiMode
	switch cfg.mode {
	case "multi":
	case "single":
		mode = harness.SingleMode
	default:
		logger.Error("unknown mode", "mode", cfg.mode)
		os.Exit(2)
	}

	if mode == harness.MultiMode {
		cfg.workers = parseWorkers(flag.Arg(0))
	}

	h, err := harness.New(
		harness.WithWorkers(cfg.workers),
		harness.WithHold(cfg.hold),
		harness.WithReleaseAfter(cfg.releaseAfter),
		harness.WithExternalHold(cfg.externalHold),
		harness.WithBaselineLoops(cfg.baseline),
		harness.WithTimeout(cfg.timeout),
		harness.WithMinGOMAXPROCS(cfg.minProcs),
		harness.WithBackoff(
			spinlock.WithMinSpin(cfg.minSpin),
			spinlock.WithMaxSpin(cfg.maxSpin),
			spinlock.WithJitter(cfg.jitter),
		),
		harness.WithLogger(logger),
	)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	res, err := h.Run(context.Background(), mode)
	if err != nil {
		logger.Error("run failed", "mode", mode.String(), "error", err)
		return
	}
	if err = report.Write(os.Stdout, res); err != nil {
		logger.Error("write report failed", "error", err)
	}
}

// parseArguments
// 解析命令行参数
func parseArguments() config {
	cfg := config{workers: harness.DefaultWorkers}

	flag.StringVar(&cfg.mode, "mode", "multi", "single (one acquirer and a timed releaser) or multi (symmetric workers)")
	flag.DurationVar(&cfg.hold, "hold", harness.DefaultHold, "critical section duration of each worker")
	flag.DurationVar(&cfg.releaseAfter, "release-after", harness.DefaultReleaseAfter, "single mode: how long the releaser holds the lock")
	flag.DurationVar(&cfg.externalHold, "external-hold", 0, "multi mode: hold the lock externally for this long before workers may acquire it")
	flag.Uint64Var(&cfg.baseline, "baseline", harness.DefaultBaselineLoops, "iterations of the uninstrumented baseline loop")
	flag.Uint64Var(&cfg.minSpin, "min-spin", spinlock.DefaultMinSpin, "initial spin iterations")
	flag.Uint64Var(&cfg.maxSpin, "max-spin", spinlock.DefaultMaxSpin, "maximum spin iterations")
	flag.BoolVar(&cfg.jitter, "jitter", false, "randomize each spin within [delay/2, delay]")
	flag.DurationVar(&cfg.timeout, "timeout", 0, "bound the whole run, 0 means no deadline")
	flag.IntVar(&cfg.minProcs, "min-procs", 0, "GOMAXPROCS floor during the run, 0 means contenders + 1")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [workers]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	return cfg
}

// parseWorkers
// 解析位置参数中的工作者数量，非数字返回 0，由 harness.New 告警并回退到默认值
func parseWorkers(arg string) int {
	if arg == "" {
		return harness.DefaultWorkers
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0
	}
	return n
}
