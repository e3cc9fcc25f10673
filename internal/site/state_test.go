package site

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_ZeroValue(t *testing.T) {
	var s State
	assert.False(t, s.Supernova())
}

func TestState_SetAndToggle(t *testing.T) {
	var s State

	s.SetSupernova(true)
	assert.True(t, s.Supernova())

	assert.False(t, s.Toggle())
	assert.False(t, s.Supernova())

	assert.True(t, s.Toggle())
	assert.True(t, s.Supernova())
}

func TestState_ConcurrentToggle(t *testing.T) {
	var s State
	var wg sync.WaitGroup

	// An even number of toggles ends where it started.
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle()
			_ = s.Supernova()
		}()
	}
	wg.Wait()

	assert.False(t, s.Supernova())
}
