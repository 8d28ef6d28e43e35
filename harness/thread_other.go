//go:build !linux

package harness

func threadID() int {
	return 0
}
