// Package ui provides the Gio-based main window: text to type,
// speed and delay controls, window targeting and hotkey settings.
package ui

import (
	"fmt"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/creator79/AutoTyper/internal/config"
	"github.com/creator79/AutoTyper/internal/format"
	"github.com/creator79/AutoTyper/internal/i18n"
)

// Colors are defined in widgets.go

// speedPresets are the quick typing speed choices, fastest first.
var speedPresets = []struct {
	labelKey string
	delay    time.Duration
}{
	{"preset_ultra_fast", 1 * time.Millisecond},
	{"preset_very_fast", 5 * time.Millisecond},
	{"preset_fast", 20 * time.Millisecond},
	{"preset_normal", 50 * time.Millisecond},
	{"preset_slow", 100 * time.Millisecond},
	{"preset_very_slow", 300 * time.Millisecond},
}

const (
	maxCharDelayMS   = 2000
	maxStartDelaySec = 60
)

// Window represents the main application window.
type Window struct {
	mu     sync.Mutex
	config *config.Config

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Status line
	status     string
	statusTime time.Time
	typing     bool

	// Editor text snapshot under mu. The editor itself belongs to
	// the event loop goroutine, other goroutines see the snapshot.
	text      string
	textDirty bool

	// Widgets - text
	textEditor  widget.Editor
	contentList widget.List

	// Widgets - speed
	presetBtns       []*widget.Clickable
	presetList       widget.List
	charDelaySlider  widget.Float
	startDelaySlider widget.Float

	// Widgets - formatting
	langButtons map[format.Language]*widget.Clickable
	langList    widget.List

	// Widgets - focus targeting
	focusEnabled   widget.Bool
	focusTarget    widget.Editor
	lastTarget     string
	policyAbortBtn widget.Clickable
	policyPauseBtn widget.Clickable

	// Widgets - hotkeys
	hotkeysEnabled widget.Bool
	restartOnStart widget.Bool
	editStartBtn   widget.Clickable
	editStopBtn    widget.Clickable

	// Widgets - UI language
	uiLangButtons map[i18n.Language]*widget.Clickable

	// Widgets - actions
	startBtn widget.Clickable
	stopBtn  widget.Clickable
	loadBtn  widget.Clickable
	saveBtn  widget.Clickable
	clearBtn widget.Clickable

	// Callbacks
	onStart         func(text string)
	onStop          func()
	onLoad          func()
	onSave          func(text string)
	onEditHotkeys   func()
	onHotkeysToggle func(enabled bool)
	onRestartChange func(enabled bool)
	onUILangChange  func(lang i18n.Language)
}

// New creates the main window bound to the given config.
func New(cfg *config.Config) *Window {
	w := &Window{
		config: cfg,
		status: i18n.T("status_idle"),
	}

	w.textEditor.SingleLine = false
	w.focusTarget.SingleLine = true
	w.contentList.Axis = layout.Vertical
	w.presetList.Axis = layout.Horizontal
	w.langList.Axis = layout.Horizontal

	w.presetBtns = make([]*widget.Clickable, len(speedPresets))
	for i := range speedPresets {
		w.presetBtns[i] = new(widget.Clickable)
	}

	w.langButtons = make(map[format.Language]*widget.Clickable)
	for _, lang := range format.AvailableLanguages() {
		w.langButtons[lang] = new(widget.Clickable)
	}

	w.uiLangButtons = make(map[i18n.Language]*widget.Clickable)
	for _, lang := range i18n.AvailableLanguages() {
		w.uiLangButtons[lang] = new(widget.Clickable)
	}

	// Seed widget state from config
	w.charDelaySlider.Value = float32(cfg.CharDelay().Milliseconds()) / maxCharDelayMS
	w.startDelaySlider.Value = float32(cfg.StartDelay().Seconds()) / maxStartDelaySec
	fc := cfg.Focus()
	w.focusEnabled.Value = fc.Enabled
	w.focusTarget.SetText(fc.Target)
	w.lastTarget = fc.Target
	w.hotkeysEnabled.Value = cfg.HotkeysEnabled()
	w.restartOnStart.Value = cfg.RestartOnStart()

	return w
}

// OnStart sets the callback for the start button.
func (w *Window) OnStart(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onStart = fn
}

// OnStop sets the callback for the stop button.
func (w *Window) OnStop(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onStop = fn
}

// OnLoad sets the callback for the load button.
func (w *Window) OnLoad(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onLoad = fn
}

// OnSave sets the callback for the save button.
func (w *Window) OnSave(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSave = fn
}

// OnEditHotkeys sets the callback for the hotkey edit button.
func (w *Window) OnEditHotkeys(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEditHotkeys = fn
}

// OnHotkeysToggle sets the callback for enabling/disabling hotkeys.
func (w *Window) OnHotkeysToggle(fn func(enabled bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onHotkeysToggle = fn
}

// OnRestartChange sets the callback for the restart policy toggle.
func (w *Window) OnRestartChange(fn func(enabled bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRestartChange = fn
}

// OnUILangChange sets the callback for when user changes UI language.
func (w *Window) OnUILangChange(fn func(lang i18n.Language)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUILangChange = fn
}

// SetText replaces the editor content. Safe to call from any
// goroutine, the event loop picks the text up on the next frame.
func (w *Window) SetText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = text
	w.textDirty = true
}

// Text returns the current editor content.
func (w *Window) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

// applyPendingText pushes a SetText value into the editor. Event loop
// goroutine only.
func (w *Window) applyPendingText() {
	w.mu.Lock()
	pending := w.text
	dirty := w.textDirty
	w.textDirty = false
	w.mu.Unlock()

	if dirty {
		w.textEditor.SetText(pending)
	}
}

// snapshotText copies the editor content into the snapshot unless a
// newer SetText is pending. Event loop goroutine only.
func (w *Window) snapshotText() {
	current := w.textEditor.Text()

	w.mu.Lock()
	if !w.textDirty {
		w.text = current
	}
	w.mu.Unlock()
}

// SetStatus updates the status line with a timestamp.
func (w *Window) SetStatus(status string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.statusTime = time.Now()
}

// SetTyping switches the start/stop buttons between states.
func (w *Window) SetTyping(typing bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.typing = typing
}

// SetCountdown shows the remaining start delay in the status line.
func (w *Window) SetCountdown(remaining time.Duration) {
	seconds := int(remaining.Seconds() + 0.999)
	w.SetStatus(fmt.Sprintf("%s %d %s", i18n.T("status_armed"), seconds, i18n.T("ui_seconds")))
}

func (w *Window) getStatus() (string, time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status, w.statusTime, w.typing
}

// Show displays the main window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop()
}

// Hide closes the main window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
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
		app.Title(i18n.T("ui_title")),
		app.Size(unit.Dp(520), unit.Dp(680)),
		app.MinSize(unit.Dp(440), unit.Dp(560)),
	)

	var ops op.Ops

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
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
			w.running = false
			w.mu.Unlock()
			// User closed the window, the ticker goroutine must not
			// outlive the event loop
			w.stopInvalidate()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	w.applyPendingText()
	defer w.snapshotText()

	// Action buttons
	if w.startBtn.Clicked(gtx) {
		w.mu.Lock()
		callback := w.onStart
		w.mu.Unlock()
		if callback != nil {
			callback(w.textEditor.Text())
		}
	}
	if w.stopBtn.Clicked(gtx) {
		w.mu.Lock()
		callback := w.onStop
		w.mu.Unlock()
		if callback != nil {
			callback()
		}
	}
	if w.loadBtn.Clicked(gtx) {
		w.mu.Lock()
		callback := w.onLoad
		w.mu.Unlock()
		if callback != nil {
			callback()
		}
	}
	if w.saveBtn.Clicked(gtx) {
		w.mu.Lock()
		callback := w.onSave
		w.mu.Unlock()
		if callback != nil {
			callback(w.textEditor.Text())
		}
	}
	if w.clearBtn.Clicked(gtx) {
		w.textEditor.SetText("")
	}

	// Speed presets
	for i, btn := range w.presetBtns {
		if btn.Clicked(gtx) {
			delay := speedPresets[i].delay
			w.charDelaySlider.Value = float32(delay.Milliseconds()) / maxCharDelayMS
			w.config.SetCharDelay(delay)
		}
	}

	// Sliders
	if w.charDelaySlider.Update(gtx) {
		ms := int(w.charDelaySlider.Value * maxCharDelayMS)
		w.config.SetCharDelay(time.Duration(ms) * time.Millisecond)
	}
	if w.startDelaySlider.Update(gtx) {
		sec := float64(w.startDelaySlider.Value) * maxStartDelaySec
		w.config.SetStartDelay(time.Duration(sec * float64(time.Second)))
	}

	// Formatting language
	for lang, btn := range w.langButtons {
		if btn.Clicked(gtx) {
			w.config.SetFormatLanguage(string(lang))
		}
	}

	// Focus targeting
	if w.focusEnabled.Update(gtx) {
		fc := w.config.Focus()
		fc.Enabled = w.focusEnabled.Value
		w.config.SetFocus(fc)
	}
	if target := w.focusTarget.Text(); target != w.lastTarget {
		w.lastTarget = target
		fc := w.config.Focus()
		fc.Target = target
		w.config.SetFocus(fc)
	}
	if w.policyAbortBtn.Clicked(gtx) {
		fc := w.config.Focus()
		fc.Policy = "abort"
		w.config.SetFocus(fc)
	}
	if w.policyPauseBtn.Clicked(gtx) {
		fc := w.config.Focus()
		fc.Policy = "pause"
		w.config.SetFocus(fc)
	}

	// Hotkeys
	if w.hotkeysEnabled.Update(gtx) {
		enabled := w.hotkeysEnabled.Value
		w.config.SetHotkeysEnabled(enabled)
		w.mu.Lock()
		callback := w.onHotkeysToggle
		w.mu.Unlock()
		if callback != nil {
			callback(enabled)
		}
	}
	if w.restartOnStart.Update(gtx) {
		enabled := w.restartOnStart.Value
		w.config.SetRestartOnStart(enabled)
		w.mu.Lock()
		callback := w.onRestartChange
		w.mu.Unlock()
		if callback != nil {
			callback(enabled)
		}
	}
	if w.editStartBtn.Clicked(gtx) || w.editStopBtn.Clicked(gtx) {
		w.mu.Lock()
		callback := w.onEditHotkeys
		w.mu.Unlock()
		if callback != nil {
			callback()
		}
	}

	// UI language - apply immediately
	for lang, btn := range w.uiLangButtons {
		if btn.Clicked(gtx) {
			if i18n.GetLanguage() != lang {
				i18n.SetLanguage(lang)
				w.config.SetUILanguage(string(lang))
				w.mu.Lock()
				callback := w.onUILangChange
				w.mu.Unlock()
				if callback != nil {
					callback(lang)
				}
			}
		}
	}
}
