package relax_test

import (
	"testing"

	"github.com/brickingsoft/spinlock/internal/relax"
)

func TestPause(t *testing.T) {
	for i := 0; i < 1000; i++ {
		relax.Pause()
	}
}

func BenchmarkPause(b *testing.B) {
	for i := 0; i < b.N; i++ {
		relax.Pause()
	}
}
