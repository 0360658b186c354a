// Package countdown provides a small window showing the start delay
// countdown before typing begins.
package countdown

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/creator79/AutoTyper/internal/i18n"
)

var (
	colorBG     = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorText   = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent = color.NRGBA{R: 255, G: 160, B: 60, A: 255}
)

// Window represents the countdown window.
type Window struct {
	mu      sync.Mutex
	window  *app.Window
	running bool
	closing bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Countdown state
	total     time.Duration
	remaining time.Duration

	onCancel func()
}

// New creates a new countdown window.
func New() *Window {
	return &Window{}
}

// OnCancel sets the callback fired when the user closes the window
// before the countdown finishes.
func (w *Window) OnCancel(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCancel = fn
}

// Show displays the countdown window for the given delay.
func (w *Window) Show(total time.Duration) {
	w.mu.Lock()
	if w.running {
		w.total = total
		w.remaining = total
		w.mu.Unlock()
		return
	}
	w.running = true
	w.closing = false
	w.total = total
	w.remaining = total
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runEventLoop()
}

// Hide closes the countdown window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.closing = true
	doneCh := w.doneCh
	w.mu.Unlock()

	w.stopInvalidate()

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// stopInvalidate stops the invalidation goroutine. Safe to call more
// than once.
func (w *Window) stopInvalidate() {
	w.mu.Lock()
	stopCh := w.stopCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
}

// SetRemaining updates the remaining time shown in the window.
func (w *Window) SetRemaining(remaining time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.remaining = remaining
}

func (w *Window) getState() (time.Duration, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.remaining, w.total
}

func (w *Window) runEventLoop() {
	defer close(w.doneCh)

	w.mu.Lock()
	stopCh := w.stopCh
	w.mu.Unlock()
	if stopCh == nil {
		// Hidden before the loop had a chance to start
		return
	}

	w.window = new(app.Window)
	w.window.Option(
		app.Title(i18n.T("app_name")),
		app.Size(unit.Dp(260), unit.Dp(180)),
		app.MinSize(unit.Dp(260), unit.Dp(180)),
		app.MaxSize(unit.Dp(260), unit.Dp(180)),
	)

	var ops op.Ops

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				if w.window != nil {
					w.window.Perform(system.ActionClose)
				}
				return
			case <-ticker.C:
				if w.window != nil {
					w.window.Invalidate()
				}
			}
		}
	}()

	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			userClosed := !w.closing && w.running
			w.running = false
			cancel := w.onCancel
			w.mu.Unlock()

			// User closed the window, the ticker goroutine must not
			// outlive the event loop
			w.stopInvalidate()

			// Closing the window by hand cancels the run
			if userClosed && cancel != nil {
				cancel()
			}
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	remaining, total := w.getState()
	seconds := int(math.Ceil(remaining.Seconds()))

	// Center content
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorText
				lbl := material.Label(th, unit.Sp(14), i18n.T("countdown_title"))
				lbl.Font.Weight = font.Medium
				lbl.Alignment = 1 // Center
				return lbl.Layout(gtx)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Progress ring with the seconds left inside
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Stack{Alignment: layout.Center}.Layout(gtx,
					layout.Stacked(func(gtx layout.Context) layout.Dimensions {
						return w.drawRing(gtx, remaining, total)
					}),
					layout.Stacked(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = colorAccent
						lbl := material.Label(th, unit.Sp(24), fmt.Sprintf("%d", seconds))
						lbl.Font.Weight = font.Bold
						return lbl.Layout(gtx)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorDim
				lbl := material.Label(th, unit.Sp(11), i18n.T("countdown_hint"))
				lbl.Alignment = 1 // Center
				return lbl.Layout(gtx)
			}),
		)
	})
}

// drawRing draws the countdown as a ring of dots fading out as time
// runs down.
func (w *Window) drawRing(gtx layout.Context, remaining, total time.Duration) layout.Dimensions {
	size := gtx.Dp(unit.Dp(64))
	thickness := gtx.Dp(unit.Dp(4))

	progress := 1.0
	if total > 0 {
		progress = float64(remaining) / float64(total)
	}

	center := image.Pt(size/2, size/2)
	radius := size/2 - thickness

	numSegments := 24
	lit := int(math.Round(progress * float64(numSegments)))
	for i := 0; i < numSegments; i++ {
		// Start at twelve o'clock, run clockwise
		segmentAngle := -math.Pi/2 + float64(i)*2*math.Pi/float64(numSegments)

		col := colorDim
		col.A = 60
		if i < lit {
			col = colorAccent
		}

		x := center.X + int(float64(radius)*math.Cos(segmentAngle))
		y := center.Y + int(float64(radius)*math.Sin(segmentAngle))

		dotRadius := thickness / 2
		dot := clip.Ellipse{
			Min: image.Pt(x-dotRadius, y-dotRadius),
			Max: image.Pt(x+dotRadius, y+dotRadius),
		}
		paint.FillShape(gtx.Ops, col, dot.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(size, size)}
}
