package maxprocs_test

import (
	"github.com/brickingsoft/spinlock/pkg/maxprocs"
	"github.com/stretchr/testify/assert"
	"os"
	"runtime"
	"testing"
)

func TestEnable(t *testing.T) {
	undo, err := maxprocs.Enable(maxprocs.Options{})
	if err != nil {
		t.Fatal(err)
		return
	}
	defer undo()
}

func TestEnable_Floor(t *testing.T) {
	if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
		t.Skip("GOMAXPROCS is set by the environment")
	}
	prev := runtime.GOMAXPROCS(0)
	floor := runtime.NumCPU() + 3

	undo, err := maxprocs.Enable(maxprocs.Options{MinGOMAXPROCS: floor})
	if err != nil {
		t.Fatal(err)
		return
	}
	assert.GreaterOrEqual(t, runtime.GOMAXPROCS(0), floor)
	undo()
	assert.Equal(t, prev, runtime.GOMAXPROCS(0))
}
