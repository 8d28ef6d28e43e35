//go:build !debug

package spinlock

// Debug
// 是否以 debug 标签构建，非 debug 构建下不做约束检查。
const Debug = false

func assertHolder(HolderID) {}

func assertDelay(uint64, uint64, uint64) {}

func assertOwner(*Cell, HolderID) {}

func assertNotReentrant(*Cell, HolderID) {}
