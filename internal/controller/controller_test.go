package controller

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creator79/AutoTyper/internal/dispatch"
	"github.com/creator79/AutoTyper/internal/focus"
	"github.com/creator79/AutoTyper/internal/input"
)

// recordTyper потокобезопасно копит набранные символы.
type recordTyper struct {
	mu    sync.Mutex
	runes []rune
}

func (r *recordTyper) TypeRune(c rune) error {
	r.mu.Lock()
	r.runes = append(r.runes, c)
	r.mu.Unlock()
	return nil
}

func (r *recordTyper) Press(input.Key) error { return nil }

func (r *recordTyper) text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.runes)
}

type noFocus struct{}

func (noFocus) Active() (focus.Window, error) { return focus.Window{}, focus.ErrUnavailable }

func newTestController() (*Controller, *recordTyper, chan dispatch.Result) {
	typer := &recordTyper{}
	c := New(dispatch.New(typer, noFocus{}))
	results := make(chan dispatch.Result, 4)
	c.OnResult(func(res dispatch.Result, err error) {
		results <- res
	})
	return c, typer, results
}

func waitResult(t *testing.T, results chan dispatch.Result) dispatch.Result {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("набор не завершился вовремя")
		return 0
	}
}

func TestControllerCompletes(t *testing.T) {
	c, typer, results := newTestController()

	var mu sync.Mutex
	var states []State
	c.OnState(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	require.NoError(t, c.Start(dispatch.Job{Text: "hi"}))
	res := waitResult(t, results)
	assert.Equal(t, dispatch.Completed, res)
	assert.Equal(t, "hi", typer.text())

	// Рабочая горутина может ещё не вернуть Idle
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) > 0 && states[len(states)-1] == StateIdle
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateArmed, StateRunning, StateIdle}, states)
}

func TestControllerStopDuringCountdown(t *testing.T) {
	c, typer, results := newTestController()

	require.NoError(t, c.Start(dispatch.Job{Text: "hi", StartDelay: time.Second}))
	time.Sleep(50 * time.Millisecond)
	c.Stop()

	res := waitResult(t, results)
	assert.Equal(t, dispatch.Cancelled, res)
	assert.Empty(t, typer.text(), "отменённый отсчёт не должен ничего набирать")
}

func TestControllerStopDuringRun(t *testing.T) {
	c, typer, results := newTestController()

	require.NoError(t, c.Start(dispatch.Job{
		Text:      "aaaaaaaaaaaaaaaaaaaa",
		CharDelay: 50 * time.Millisecond,
	}))
	time.Sleep(120 * time.Millisecond)
	c.Stop()

	res := waitResult(t, results)
	assert.Equal(t, dispatch.Cancelled, res)
	typed := typer.text()
	assert.NotEmpty(t, typed)
	assert.Less(t, len(typed), 20)
}

func TestControllerSecondStartIgnored(t *testing.T) {
	c, _, results := newTestController()

	require.NoError(t, c.Start(dispatch.Job{Text: "hi", StartDelay: 300 * time.Millisecond}))
	err := c.Start(dispatch.Job{Text: "other"})
	assert.ErrorIs(t, err, ErrBusy)

	c.Stop()
	waitResult(t, results)
}

func TestControllerRestartOnStart(t *testing.T) {
	c, typer, results := newTestController()
	c.SetRestartOnStart(true)

	require.NoError(t, c.Start(dispatch.Job{
		Text:      "xxxxxxxxxxxxxxxxxxxx",
		CharDelay: 50 * time.Millisecond,
	}))
	time.Sleep(80 * time.Millisecond)

	require.NoError(t, c.Start(dispatch.Job{Text: "ok"}))
	waitResult(t, results) // Cancelled от первого задания
	res := waitResult(t, results)
	assert.Equal(t, dispatch.Completed, res)
	assert.Contains(t, typer.text(), "ok")
}

func TestControllerStopWhenIdle(t *testing.T) {
	c, _, _ := newTestController()
	c.Stop()
	c.Stop()
	assert.Equal(t, StateIdle, c.State())
}

func TestControllerRejectsInvalidJob(t *testing.T) {
	c, _, _ := newTestController()
	err := c.Start(dispatch.Job{})
	assert.ErrorIs(t, err, dispatch.ErrConfig)
	assert.Equal(t, StateIdle, c.State())
}

func TestControllerCountdownReports(t *testing.T) {
	c, _, results := newTestController()

	var mu sync.Mutex
	var ticks []time.Duration
	c.OnCountdown(func(remaining time.Duration) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	})

	require.NoError(t, c.Start(dispatch.Job{Text: "a", StartDelay: 300 * time.Millisecond}))
	res := waitResult(t, results)
	assert.Equal(t, dispatch.Completed, res)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, ticks)
	assert.Equal(t, 300*time.Millisecond, ticks[0])
	assert.Equal(t, time.Duration(0), ticks[len(ticks)-1])
}
