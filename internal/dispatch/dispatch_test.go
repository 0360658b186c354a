package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creator79/AutoTyper/internal/focus"
	"github.com/creator79/AutoTyper/internal/input"
)

type event struct {
	r     rune
	key   input.Key
	press bool
}

// fakeTyper записывает эмитированные события вместо системного ввода.
type fakeTyper struct {
	events []event
	failAt int // номер события с ошибкой, 0 - без ошибок
	onEmit func(n int)
}

func (f *fakeTyper) emit(e event) error {
	f.events = append(f.events, e)
	if f.failAt != 0 && len(f.events) >= f.failAt {
		return errors.New("sendinput failed")
	}
	if f.onEmit != nil {
		f.onEmit(len(f.events))
	}
	return nil
}

func (f *fakeTyper) TypeRune(r rune) error { return f.emit(event{r: r}) }
func (f *fakeTyper) Press(k input.Key) error {
	return f.emit(event{key: k, press: true})
}

// fakeChecker отдаёт заранее заданную последовательность окон.
type fakeChecker struct {
	windows []focus.Window
	err     error
	calls   int
}

func (f *fakeChecker) Active() (focus.Window, error) {
	f.calls++
	if f.err != nil {
		return focus.Window{}, f.err
	}
	i := f.calls - 1
	if i >= len(f.windows) {
		i = len(f.windows) - 1
	}
	return f.windows[i], nil
}

func TestRunEmitsEveryCharacter(t *testing.T) {
	typer := &fakeTyper{}
	d := New(typer, &fakeChecker{})

	res, err := d.Run(context.Background(), Job{Text: "ab\tc\nd"})
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	want := []event{
		{r: 'a'},
		{r: 'b'},
		{key: input.KeyTab, press: true},
		{r: 'c'},
		{key: input.KeyEnter, press: true},
		{r: 'd'},
	}
	assert.Equal(t, want, typer.events)
}

func TestRunNoTrailingNewline(t *testing.T) {
	typer := &fakeTyper{}
	d := New(typer, &fakeChecker{})

	res, err := d.Run(context.Background(), Job{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Equal(t, []event{{r: 'h'}, {r: 'i'}}, typer.events)
}

func TestRunCancelStopsExactly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	typer := &fakeTyper{}
	typer.onEmit = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	d := New(typer, &fakeChecker{})

	res, err := d.Run(ctx, Job{Text: "abcdef", CharDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res)
	assert.Len(t, typer.events, 3, "после отмены событий быть не должно")
}

func TestRunCancelBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	typer := &fakeTyper{}
	d := New(typer, &fakeChecker{})

	res, err := d.Run(ctx, Job{Text: "abc"})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res)
	assert.Empty(t, typer.events)
}

func TestRunEmissionError(t *testing.T) {
	typer := &fakeTyper{failAt: 2}
	d := New(typer, &fakeChecker{})

	_, err := d.Run(context.Background(), Job{Text: "abc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmission)
	assert.Len(t, typer.events, 2)
}

func TestRunFocusAbort(t *testing.T) {
	typer := &fakeTyper{}
	checker := &fakeChecker{windows: []focus.Window{{Title: "Browser"}}}
	d := New(typer, checker)

	_, err := d.Run(context.Background(), Job{
		Text:        "abc",
		FocusTarget: "Notepad",
		FocusPolicy: FocusAbort,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFocusLost)
	assert.Empty(t, typer.events, "набор не должен начинаться в чужом окне")
}

func TestRunFocusPauseResumes(t *testing.T) {
	typer := &fakeTyper{}
	checker := &fakeChecker{windows: []focus.Window{
		{Title: "Browser"},
		{Title: "My Notepad"},
	}}
	d := New(typer, checker)

	res, err := d.Run(context.Background(), Job{
		Text:        "ab",
		FocusTarget: "notepad",
		FocusPolicy: FocusPause,
	})
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Equal(t, []event{{r: 'a'}, {r: 'b'}}, typer.events)
	assert.GreaterOrEqual(t, checker.calls, 2)
}

func TestRunFocusPauseCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	typer := &fakeTyper{}
	checker := &fakeChecker{windows: []focus.Window{{Title: "Browser"}}}
	d := New(typer, checker)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	res, err := d.Run(ctx, Job{
		Text:        "ab",
		FocusTarget: "notepad",
		FocusPolicy: FocusPause,
	})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res)
	assert.Empty(t, typer.events)
}

func TestRunFocusUnavailable(t *testing.T) {
	typer := &fakeTyper{}
	checker := &fakeChecker{err: focus.ErrUnavailable}
	d := New(typer, checker)

	res, err := d.Run(context.Background(), Job{
		Text:               "ab",
		FocusTarget:        "notepad",
		OnFocusUnavailable: UnavailableProceed,
	})
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Len(t, typer.events, 2)

	typer = &fakeTyper{}
	d = New(typer, checker)
	_, err = d.Run(context.Background(), Job{
		Text:               "ab",
		FocusTarget:        "notepad",
		OnFocusUnavailable: UnavailableAbort,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFocusUnavailable)
	assert.Empty(t, typer.events)
}

func TestRunNoTargetSkipsFocusCheck(t *testing.T) {
	typer := &fakeTyper{}
	checker := &fakeChecker{err: errors.New("should not be called")}
	d := New(typer, checker)

	res, err := d.Run(context.Background(), Job{Text: "ab"})
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Zero(t, checker.calls)
}

func TestJobValidate(t *testing.T) {
	cases := []struct {
		name string
		job  Job
		ok   bool
	}{
		{"valid", Job{Text: "x", CharDelay: 10 * time.Millisecond}, true},
		{"zero delay", Job{Text: "x"}, true},
		{"empty text", Job{}, false},
		{"negative delay", Job{Text: "x", CharDelay: -time.Millisecond}, false},
		{"delay too big", Job{Text: "x", CharDelay: 3 * time.Second}, false},
		{"start delay too big", Job{Text: "x", StartDelay: 2 * time.Minute}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfig)
			}
		})
	}
}
