//go:build !debug

package spinlock_test

import (
	"github.com/brickingsoft/spinlock"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRelease_Unchecked(t *testing.T) {
	assert.False(t, spinlock.Debug)

	cell := spinlock.NewCell()
	id := spinlock.NextHolder()
	assert.True(t, cell.TryAcquire(id))
	assert.False(t, cell.TryAcquire(id), "strict lock: re-acquire by the holder fails")
	assert.NotPanics(t, func() { cell.ReleaseAs(spinlock.NextHolder()) })
	assert.Equal(t, spinlock.NoHolder, cell.Holder())
}
