//go:build debug

package spinlock

import "fmt"

// Debug
// 是否以 debug 标签构建，debug 构建下违反约束会 panic。
const Debug = true

func assertHolder(id HolderID) {
	if id == NoHolder {
		panic("spinlock: acquire with NoHolder")
	}
}

func assertDelay(delay uint64, minSpin uint64, maxSpin uint64) {
	if delay < minSpin || delay > maxSpin {
		panic(fmt.Sprintf("spinlock: spin delay %d out of [%d, %d]", delay, minSpin, maxSpin))
	}
}

func assertOwner(cell *Cell, id HolderID) {
	if holder := cell.Holder(); holder != id {
		panic(fmt.Sprintf("spinlock: release by %d but lock is held by %d", id, holder))
	}
}

func assertNotReentrant(cell *Cell, id HolderID) {
	if cell.Holder() == id {
		panic(fmt.Sprintf("spinlock: %d acquires a lock it already holds", id))
	}
}
