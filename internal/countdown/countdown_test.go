package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopInvalidateIdempotent(t *testing.T) {
	w := New()
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh

	w.stopInvalidate()
	select {
	case <-stopCh:
	default:
		t.Fatal("stop channel not closed")
	}

	// Second call must be a no-op, not a double close
	require.NotPanics(t, func() { w.stopInvalidate() })
}

func TestHideWithoutShow(t *testing.T) {
	w := New()
	require.NotPanics(t, func() { w.Hide() })
}

func TestSetRemainingUpdatesState(t *testing.T) {
	w := New()
	w.total = 3 * time.Second
	w.remaining = 3 * time.Second

	w.SetRemaining(1 * time.Second)

	w.mu.Lock()
	remaining := w.remaining
	w.mu.Unlock()
	assert.Equal(t, 1*time.Second, remaining)
}
