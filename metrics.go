package spinlock

import "time"

// Metrics
// 一次获取的计数与计时。
//
// 由一个工作者独占，只有在该工作者被 join 之后才允许其他协程读取。
type Metrics struct {
	// Spins
	// 成功前（含成功那一轮）所有自旋次数之和
	Spins uint64
	// Backoffs
	// 失败退避次数
	Backoffs uint32
	// WallMillis
	// 墙上时钟（毫秒精度）测得的耗时
	WallMillis int64
	// HighResMicros
	// 单调高精度时钟测得的耗时（微秒）
	HighResMicros int64

	wallBegin time.Time
	monoBegin time.Time
}

// Begin
// 在进入获取循环前采样
func (m *Metrics) Begin() {
	m.monoBegin = time.Now()
	m.wallBegin = time.Now().Round(0)
}

// End
// 在获取循环结束后采样，并计算耗时
func (m *Metrics) End() {
	wallEnd := time.Now().Round(0)
	m.HighResMicros = time.Since(m.monoBegin).Microseconds()
	m.WallMillis = wallEnd.UnixMilli() - m.wallBegin.UnixMilli()
	if m.WallMillis < 0 {
		// wall clock stepped backwards
		m.WallMillis = 0
	}
}

// SpinsPerMilli
// Spins / max(1, WallMillis)
func (m *Metrics) SpinsPerMilli() uint64 {
	return perMilli(m.Spins, m.WallMillis)
}

// SpinsPerMilliHighRes
// Spins / max(1, HighResMicros / 1000)
func (m *Metrics) SpinsPerMilliHighRes() uint64 {
	return perMilli(m.Spins, m.HighResMicros/1000)
}

func perMilli(n uint64, millis int64) uint64 {
	if millis < 1 {
		millis = 1
	}
	return n / uint64(millis)
}
