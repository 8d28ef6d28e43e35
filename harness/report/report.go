// report
// 将 harness 的运行结果渲染为文本报告
package report

import (
	"fmt"
	"github.com/brickingsoft/spinlock/harness"
	"github.com/valyala/bytebufferpool"
	"io"
)

// Write
// 将 res 渲染为文本写入 w
func Write(w io.Writer, res *harness.Result) (err error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	Render(buf, res)
	_, err = w.Write(buf.B)
	return
}

// Render
// 将 res 渲染到 buf
func Render(buf *bytebufferpool.ByteBuffer, res *harness.Result) {
	if res == nil {
		return
	}
	if res.Mode == harness.MultiMode {
		_, _ = fmt.Fprintf(buf, "Launched %d worker(s).\n", res.Requested)
	}
	for i := range res.Workers {
		renderWorker(buf, res.Mode, &res.Workers[i])
	}
	if n := len(res.SpawnFailures); n > 0 {
		for _, index := range res.SpawnFailures {
			_, _ = fmt.Fprintf(buf, "Failed to create worker %d\n", index+1)
		}
		_, _ = fmt.Fprintf(buf, "%d of %d worker(s) were not started and are excluded from the total.\n", n, res.Requested)
	}
	if res.Mode == harness.MultiMode {
		_, _ = fmt.Fprintf(buf, "All workers completed. Total Spins: %d\n", res.TotalSpins)
	}
}

func renderWorker(buf *bytebufferpool.ByteBuffer, mode harness.Mode, w *harness.WorkerResult) {
	prefix := "SpinToAcquireLockWithExponentialBackoff"
	if mode == harness.MultiMode {
		prefix = fmt.Sprintf("Worker %d (thread %d): %s", w.Index+1, w.ThreadID, prefix)
	}
	m := &w.Metrics
	_, _ = fmt.Fprintf(buf, "%s: Milliseconds elapsed = %d, Spins=%d, Backoffs=%d\n", prefix, m.WallMillis, m.Spins, m.Backoffs)
	_, _ = fmt.Fprintf(buf, "%s: Spins/Millisecond=%d\n", prefix, m.SpinsPerMilli())
	_, _ = fmt.Fprintf(buf, "%s: Spins/Millisecond(high-res)=%d\n", prefix, m.SpinsPerMilliHighRes())
	if w.Err != nil {
		_, _ = fmt.Fprintf(buf, "%s: lock not acquired: %v\n", prefix, w.Err)
		return
	}

	loopPrefix := "Simple Loop"
	if mode == harness.MultiMode {
		loopPrefix = fmt.Sprintf("Worker %d: Simple Loop", w.Index+1)
	}
	_, _ = fmt.Fprintf(buf, "%s - Milliseconds elapsed (high-res)=%d, Loops=%d\n", loopPrefix, w.Baseline.Millis(), w.Baseline.Loops)
	_, _ = fmt.Fprintf(buf, "%s - Spins/Millisecond (high-res)=%d\n", loopPrefix, w.Baseline.LoopsPerMilli())
	if mode == harness.MultiMode {
		_, _ = fmt.Fprintf(buf, "Worker %d completed. Local Spins: %d\n", w.Index+1, m.Spins)
	}
}
