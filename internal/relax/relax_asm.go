//go:build amd64 || arm64

package relax

// Pause
// 提示处理器当前处于自旋等待中。
// amd64 上为 PAUSE 指令，arm64 上为 YIELD 指令。
// 不访问任何内存。
//
//go:noescape
//go:nosplit
func Pause()
