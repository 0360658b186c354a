// Package notify предоставляет системные уведомления.
package notify

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/creator79/AutoTyper/internal/i18n"
)

const appName = "AutoTyper"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Armed показывает уведомление о стартовом отсчёте.
func (n *Notifier) Armed(delay time.Duration) {
	msg := fmt.Sprintf("%s %.0f %s", i18n.T("notify_armed"), delay.Seconds(), i18n.T("ui_seconds"))
	n.notify(msg, i18n.T("notify_armed_hint"))
}

// Typing показывает уведомление о начале набора.
func (n *Notifier) Typing() {
	n.notify(i18n.T("notify_typing"), i18n.T("notify_typing_hint"))
}

// Done показывает уведомление о завершении набора.
func (n *Notifier) Done() {
	n.notify(i18n.T("notify_done"), "")
}

// Stopped показывает уведомление об остановке набора.
func (n *Notifier) Stopped() {
	n.notify(i18n.T("notify_stopped"), i18n.T("notify_stopped_hint"))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
