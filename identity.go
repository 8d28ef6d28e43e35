package spinlock

import "sync/atomic"

// HolderID
// 锁持有者标识。0 表示锁空闲，因此不能作为持有者使用。
type HolderID uint64

const (
	// NoHolder
	// 空闲值，不可用于获取锁。
	NoHolder HolderID = 0
	// SentinelHolder
	// 保留的非零值，表示锁被“非真实参与者”持有，例如单获取者模式下的初始状态。
	SentinelHolder HolderID = 1
	// FirstHolder
	// 第一个可分配给真实参与者的标识。
	FirstHolder HolderID = 2
)

// Valid
// 是否可用于获取锁
func (id HolderID) Valid() bool {
	return id != NoHolder
}

var holders = func() *atomic.Uint64 {
	v := new(atomic.Uint64)
	v.Store(uint64(FirstHolder) - 1)
	return v
}()

// NextHolder
// 分配一个进程内唯一的持有者标识，从 FirstHolder 开始递增。
func NextHolder() HolderID {
	return HolderID(holders.Add(1))
}
