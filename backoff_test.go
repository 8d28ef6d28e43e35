package spinlock_test

import (
	"github.com/brickingsoft/spinlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestBackoff_Sequence(t *testing.T) {
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)

	expected := []uint64{
		250, 500, 1000, 2000, 4000, 8000, 16000, 32000, 64000,
		128000, 256000, 512000, 1000000, 1000000, 1000000,
	}
	delays := make([]uint64, 0, len(expected))
	for range expected {
		delays = append(delays, b.Delay())
		b.OnFailure()
	}
	assert.Equal(t, expected, delays)

	for i := 1; i < len(delays); i++ {
		assert.GreaterOrEqual(t, delays[i], delays[i-1])
		assert.Equal(t, min(spinlock.DefaultMaxSpin, delays[i-1]*2), delays[i])
	}

	b.Reset()
	assert.Equal(t, spinlock.DefaultMinSpin, b.Delay())
}

func TestBackoff_Clone(t *testing.T) {
	b, err := spinlock.NewBackoff(spinlock.WithMinSpin(8), spinlock.WithMaxSpin(64))
	require.NoError(t, err)
	b.OnFailure()
	b.OnFailure()
	require.EqualValues(t, 32, b.Delay())

	c := b.Clone()
	assert.EqualValues(t, 8, c.Delay())
	for i := 0; i < 5; i++ {
		c.OnFailure()
	}
	assert.EqualValues(t, 64, c.Delay())
	assert.EqualValues(t, 32, b.Delay())
}

func TestBackoff_Spin(t *testing.T) {
	b, err := spinlock.NewBackoff(spinlock.WithMinSpin(16), spinlock.WithMaxSpin(100))
	require.NoError(t, err)

	assert.EqualValues(t, 16, b.Spin())
	b.OnFailure()
	assert.EqualValues(t, 32, b.Spin())
	b.OnFailure()
	b.OnFailure()
	assert.EqualValues(t, 100, b.Delay())
	assert.EqualValues(t, 100, b.Spin())
}

func TestBackoff_Jitter(t *testing.T) {
	b, err := spinlock.NewBackoff(spinlock.WithMinSpin(64), spinlock.WithMaxSpin(4096), spinlock.WithJitter(true))
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		delay := b.Delay()
		for j := 0; j < 20; j++ {
			n := b.Spin()
			assert.GreaterOrEqual(t, n, delay/2)
			assert.LessOrEqual(t, n, delay)
		}
		b.OnFailure()
	}
	assert.EqualValues(t, 4096, b.Delay(), "jitter must not change the doubling")
}

func TestLoadOptions(t *testing.T) {
	opts, err := spinlock.LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, spinlock.DefaultOptions(), opts)
	assert.False(t, opts.Jitter)

	_, err = spinlock.LoadOptions(spinlock.WithMinSpin(10), spinlock.WithMaxSpin(5))
	assert.True(t, spinlock.IsInvalidSpinRange(err))

	_, err = spinlock.LoadOptions(spinlock.WithMinSpin(0))
	assert.True(t, spinlock.IsInvalidSpinRange(err))

	_, err = spinlock.NewBackoff(spinlock.WithOptions(spinlock.Options{MinSpin: 0, MaxSpin: 10}))
	assert.True(t, spinlock.IsInvalidSpinRange(err))
}
