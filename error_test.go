package spinlock_test

import (
	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/spinlock"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestErrors(t *testing.T) {
	assert.EqualError(t, spinlock.ErrAcquireCanceled, "acquire canceled before the lock was obtained")
	assert.EqualError(t, spinlock.ErrInvalidSpinRange, "invalid spin range")

	wrapped := errors.From(spinlock.ErrAcquireCanceled, errors.WithMeta("pkg", "spinlock"))
	assert.True(t, spinlock.IsAcquireCanceled(wrapped))
	assert.False(t, spinlock.IsInvalidSpinRange(wrapped))

	_, err := spinlock.LoadOptions(spinlock.WithMinSpin(0))
	assert.True(t, spinlock.IsInvalidSpinRange(err))
	assert.False(t, spinlock.IsAcquireCanceled(err))
}
