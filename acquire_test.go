package spinlock_test

import (
	"context"
	"github.com/brickingsoft/spinlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// failingProber fails the first failures probes.
type failingProber struct {
	failures int
	probes   int
}

func (p *failingProber) TryAcquire(id spinlock.HolderID) bool {
	p.probes++
	return p.probes > p.failures
}

func TestAcquire_SpinAccounting(t *testing.T) {
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)
	p := &failingProber{failures: 3}
	var m spinlock.Metrics

	spinlock.Acquire(p, spinlock.FirstHolder, b, &m)

	assert.EqualValues(t, 250+500+1000+2000, m.Spins)
	assert.EqualValues(t, 3, m.Backoffs)
	assert.Equal(t, 4, p.probes)
	assert.EqualValues(t, 2000, b.Delay(), "delay doubles after every failure only")
}

func TestAcquire_FastPath(t *testing.T) {
	cell := spinlock.NewCell()
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)
	id := spinlock.NextHolder()
	var m spinlock.Metrics

	spinlock.Acquire(cell, id, b, &m)

	assert.Equal(t, id, cell.Holder())
	assert.Zero(t, m.Backoffs)
	assert.Equal(t, spinlock.DefaultMinSpin, m.Spins)
}

func TestAcquire_TimedRelease(t *testing.T) {
	cell := spinlock.NewHeldCell(spinlock.SentinelHolder)
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)
	id := spinlock.NextHolder()
	var m spinlock.Metrics

	go func() {
		time.Sleep(20 * time.Millisecond)
		cell.ReleaseAs(spinlock.SentinelHolder)
	}()

	m.Begin()
	spinlock.Acquire(cell, id, b, &m)
	m.End()

	assert.Equal(t, id, cell.Holder())
	assert.GreaterOrEqual(t, m.Backoffs, uint32(1))
	assert.GreaterOrEqual(t, m.HighResMicros, int64(15_000))
	t.Log("spins", m.Spins, "backoffs", m.Backoffs, "micros", m.HighResMicros)
}

func TestAcquireContext_Canceled(t *testing.T) {
	cell := spinlock.NewHeldCell(spinlock.SentinelHolder)
	b, err := spinlock.NewBackoff(spinlock.WithMaxSpin(4096))
	require.NoError(t, err)
	var m spinlock.Metrics

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = spinlock.AcquireContext(ctx, cell, spinlock.NextHolder(), b, &m)
	require.Error(t, err)
	assert.True(t, spinlock.IsAcquireCanceled(err))
	assert.Equal(t, spinlock.SentinelHolder, cell.Holder())
	assert.Positive(t, m.Backoffs)
}

func TestAcquireContext_Acquired(t *testing.T) {
	cell := spinlock.NewHeldCell(spinlock.SentinelHolder)
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)
	id := spinlock.NextHolder()
	var m spinlock.Metrics

	go func() {
		time.Sleep(5 * time.Millisecond)
		cell.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, spinlock.AcquireContext(ctx, cell, id, b, &m))
	assert.Equal(t, id, cell.Holder())
	assert.GreaterOrEqual(t, m.Backoffs, uint32(1))
}

func TestAcquireContext_NoDeadline(t *testing.T) {
	b, err := spinlock.NewBackoff()
	require.NoError(t, err)
	p := &failingProber{failures: 2}
	var m spinlock.Metrics

	require.NoError(t, spinlock.AcquireContext(context.Background(), p, spinlock.FirstHolder, b, &m))
	assert.EqualValues(t, 250+500+1000, m.Spins)
	assert.EqualValues(t, 2, m.Backoffs)
}
