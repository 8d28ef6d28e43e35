package harness

import "github.com/brickingsoft/errors"

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "harness"
)

var (
	// ErrReleaserUnavailable 无法启动释放者，锁将永远不会被释放，因此放弃本次运行
	ErrReleaserUnavailable = errors.Define("releaser task could not be started")
)

// IsReleaserUnavailable
// 是否为 ErrReleaserUnavailable 错误
func IsReleaserUnavailable(err error) bool {
	return errors.Is(err, ErrReleaserUnavailable)
}
