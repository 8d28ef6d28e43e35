//go:build debug

package spinlock_test

import (
	"github.com/brickingsoft/spinlock"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDebug_AcquireWithNoHolder(t *testing.T) {
	cell := spinlock.NewCell()
	assert.Panics(t, func() { cell.TryAcquire(spinlock.NoHolder) })
}

func TestDebug_Reacquire(t *testing.T) {
	cell := spinlock.NewCell()
	id := spinlock.NextHolder()
	assert.True(t, cell.TryAcquire(id))
	assert.Panics(t, func() { cell.TryAcquire(id) })
	assert.NotPanics(t, func() { cell.TryAcquire(spinlock.NextHolder()) })
}

func TestDebug_ReleaseByOther(t *testing.T) {
	cell := spinlock.NewCell()
	id := spinlock.NextHolder()
	assert.True(t, cell.TryAcquire(id))
	assert.Panics(t, func() { cell.ReleaseAs(spinlock.NextHolder()) })
	assert.NotPanics(t, func() { cell.ReleaseAs(id) })
}
