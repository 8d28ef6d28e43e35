package spinlock

import (
	"golang.org/x/sys/cpu"
	"sync/atomic"
)

// Cell
// 锁字。
//
// 0 表示空闲，非 0 表示持有者标识。唯一合法的状态转换是 0 -> id（获取）与 any -> 0（释放）。
// 锁字独占一个缓存行，避免与相邻数据伪共享。
type Cell struct {
	_    cpu.CacheLinePad
	word atomic.Uint64
	_    cpu.CacheLinePad
}

// NewCell
// 创建一个空闲的锁字
func NewCell() *Cell {
	return new(Cell)
}

// NewHeldCell
// 创建一个已被 id 持有的锁字
func NewHeldCell(id HolderID) *Cell {
	assertHolder(id)
	c := new(Cell)
	c.word.Store(uint64(id))
	return c
}

// TryAcquire
// 尝试一次获取，仅当锁字为 0 时将其交换为 id。
//
// id 不能为 NoHolder。不会重试，也不会阻塞。
// 锁不可重入，持有者再次获取同样失败（debug 构建下 panic）。
func (c *Cell) TryAcquire(id HolderID) bool {
	assertHolder(id)
	if c.word.CompareAndSwap(0, uint64(id)) {
		return true
	}
	assertNotReentrant(c, id)
	return false
}

// Release
// 无条件释放，不检查调用者是否为持有者。
func (c *Cell) Release() {
	c.word.Store(0)
}

// ReleaseAs
// 以 id 的身份释放。debug 构建下检查 id 是否为当前持有者。
func (c *Cell) ReleaseAs(id HolderID) {
	assertOwner(c, id)
	c.word.Store(0)
}

// Holder
// 当前持有者，NoHolder 表示空闲
func (c *Cell) Holder() HolderID {
	return HolderID(c.word.Load())
}
