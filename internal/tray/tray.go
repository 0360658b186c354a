// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"

	"github.com/creator79/AutoTyper/embedded"
	"github.com/creator79/AutoTyper/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateTyping
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnOpenWindow          func()
	OnStopClick           func()
	OnNotificationsToggle func() bool
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks Callbacks
	status    *systray.MenuItem
	openBtn   *systray.MenuItem
	stopBtn   *systray.MenuItem
	notifyOn  *systray.MenuItem
	quitBtn   *systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks: callbacks,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("AutoTyper")
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	// Главное окно
	t.openBtn = systray.AddMenuItem(i18n.T("tray_open"), i18n.T("tray_open_hint"))

	// Остановка набора
	t.stopBtn = systray.AddMenuItem(i18n.T("tray_stop"), i18n.T("tray_stop_hint"))
	t.stopBtn.Disable()

	// Уведомления
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), true)

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		// Главное окно
		case <-t.openBtn.ClickedCh:
			if t.callbacks.OnOpenWindow != nil {
				t.callbacks.OnOpenWindow()
			}

		// Остановка набора
		case <-t.stopBtn.ClickedCh:
			if t.callbacks.OnStopClick != nil {
				t.callbacks.OnStopClick()
			}

		// Уведомления
		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				enabled := t.callbacks.OnNotificationsToggle()
				if enabled {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
		}
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
		systray.SetTooltip("AutoTyper - " + i18n.T("tray_ready"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_ready"))
		}
		if t.stopBtn != nil {
			t.stopBtn.Disable()
		}
	case StateArmed:
		systray.SetIcon(embedded.IconArmed)
		systray.SetTooltip("AutoTyper - " + i18n.T("tray_armed"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_armed"))
		}
		if t.stopBtn != nil {
			t.stopBtn.Enable()
		}
	case StateTyping:
		systray.SetIcon(embedded.IconTyping)
		systray.SetTooltip("AutoTyper - " + i18n.T("tray_typing"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_typing"))
		}
		if t.stopBtn != nil {
			t.stopBtn.Enable()
		}
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	systray.SetTooltip(i18n.T("app_tooltip"))

	if t.status != nil {
		t.status.SetTitle(i18n.T("tray_ready"))
	}
	if t.openBtn != nil {
		t.openBtn.SetTitle(i18n.T("tray_open"))
		t.openBtn.SetTooltip(i18n.T("tray_open_hint"))
	}
	if t.stopBtn != nil {
		t.stopBtn.SetTitle(i18n.T("tray_stop"))
		t.stopBtn.SetTooltip(i18n.T("tray_stop_hint"))
	}
	if t.notifyOn != nil {
		t.notifyOn.SetTitle(i18n.T("tray_notifications"))
		t.notifyOn.SetTooltip(i18n.T("tray_notifications_hint"))
	}
	if t.quitBtn != nil {
		t.quitBtn.SetTitle(i18n.T("tray_quit"))
		t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
	}
}
