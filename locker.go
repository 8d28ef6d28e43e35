package spinlock

import "sync"

// New
// 创建一个基于退避自旋的 sync.Locker，使用默认退避选项。
func New() sync.Locker {
	l, _ := NewLocker(NewCell())
	return l
}

// NewLocker
// 在 cell 上创建 Locker。每次 Lock 使用新分配的持有者标识。
func NewLocker(cell *Cell, options ...Option) (*Locker, error) {
	opts, err := LoadOptions(options...)
	if err != nil {
		return nil, err
	}
	return &Locker{
		cell:    cell,
		options: opts,
	}, nil
}

// Locker
// 将 Cell 与 Acquire 适配为 sync.Locker。
type Locker struct {
	cell    *Cell
	options Options
	// owner 只在持有锁时读写
	owner HolderID
}

// Lock
// 先尝试一次，失败后进入 Acquire 的退避循环。
func (l *Locker) Lock() {
	id := NextHolder()
	if l.cell.TryAcquire(id) {
		l.owner = id
		return
	}
	b := newBackoff(l.options)
	var m Metrics
	Acquire(l.cell, id, &b, &m)
	l.owner = id
}

// TryLock
// 尝试一次获取，不自旋
func (l *Locker) TryLock() bool {
	id := NextHolder()
	if l.cell.TryAcquire(id) {
		l.owner = id
		return true
	}
	return false
}

func (l *Locker) Unlock() {
	id := l.owner
	l.owner = NoHolder
	l.cell.ReleaseAs(id)
}
