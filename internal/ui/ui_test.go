package ui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creator79/AutoTyper/internal/config"
)

func TestSetTextVisibleBeforeFirstFrame(t *testing.T) {
	w := New(config.NewAt(""))

	// Text() must reflect SetText even when the event loop never ran
	w.SetText("hello")
	assert.Equal(t, "hello", w.Text())
}

func TestApplyPendingTextPushesIntoEditor(t *testing.T) {
	w := New(config.NewAt(""))

	w.SetText("pending")
	w.applyPendingText()
	assert.Equal(t, "pending", w.textEditor.Text())

	// No new SetText: a second apply must not touch the editor
	w.textEditor.SetText("typed by user")
	w.applyPendingText()
	assert.Equal(t, "typed by user", w.textEditor.Text())
}

func TestSnapshotTextCopiesEditorContent(t *testing.T) {
	w := New(config.NewAt(""))

	w.textEditor.SetText("typed by user")
	w.snapshotText()
	assert.Equal(t, "typed by user", w.Text())
}

func TestSnapshotTextKeepsNewerSetText(t *testing.T) {
	w := New(config.NewAt(""))

	w.textEditor.SetText("stale editor content")
	// SetText arrived after the editor was last applied, its value wins
	w.SetText("fresh")
	w.snapshotText()
	assert.Equal(t, "fresh", w.Text())
}

func TestTextConcurrentAccess(t *testing.T) {
	w := New(config.NewAt(""))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				w.SetText("abc")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = w.Text()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, "abc", w.Text())
}

func TestStopInvalidateIdempotent(t *testing.T) {
	w := New(config.NewAt(""))
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
	w := New(config.NewAt(""))
	require.NotPanics(t, func() { w.Hide() })
}
