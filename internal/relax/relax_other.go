//go:build !amd64 && !arm64

package relax

// Pause
// 无对应指令的平台上为空操作。
func Pause() {}
