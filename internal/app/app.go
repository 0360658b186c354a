// Package app содержит основную логику приложения.
package app

import (
	"errors"
	"log"
	"time"

	"github.com/ncruces/zenity"

	"github.com/creator79/AutoTyper/internal/config"
	"github.com/creator79/AutoTyper/internal/controller"
	"github.com/creator79/AutoTyper/internal/countdown"
	"github.com/creator79/AutoTyper/internal/dialog"
	"github.com/creator79/AutoTyper/internal/dispatch"
	"github.com/creator79/AutoTyper/internal/focus"
	"github.com/creator79/AutoTyper/internal/format"
	"github.com/creator79/AutoTyper/internal/hotkey"
	"github.com/creator79/AutoTyper/internal/i18n"
	"github.com/creator79/AutoTyper/internal/input"
	"github.com/creator79/AutoTyper/internal/notify"
	"github.com/creator79/AutoTyper/internal/tray"
	"github.com/creator79/AutoTyper/internal/ui"
)

// App представляет главное приложение.
type App struct {
	config       *config.Config
	controller   *controller.Controller
	notifier     *notify.Notifier
	tray         *tray.Tray
	hotkey       *hotkey.Handler
	mainWin      *ui.Window
	countdownWin *countdown.Window
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	typer, err := input.New()
	if err != nil {
		return nil, err
	}

	dispatcher := dispatch.New(typer, focus.New())

	app := &App{
		config:     cfg,
		controller: controller.New(dispatcher),
		notifier:   notify.New(cfg.NotificationsEnabled()),
	}
	app.controller.SetRestartOnStart(cfg.RestartOnStart())

	// Главное окно
	app.mainWin = ui.New(cfg)
	app.mainWin.OnStart(app.startTyping)
	app.mainWin.OnStop(app.controller.Stop)
	app.mainWin.OnLoad(app.loadText)
	app.mainWin.OnSave(app.saveText)
	app.mainWin.OnEditHotkeys(app.editHotkeys)
	app.mainWin.OnHotkeysToggle(app.toggleHotkeys)
	app.mainWin.OnRestartChange(app.controller.SetRestartOnStart)
	app.mainWin.OnUILangChange(func(lang i18n.Language) {
		app.tray.RefreshUI()
	})

	// Окно отсчёта перед стартом
	app.countdownWin = countdown.New()
	app.countdownWin.OnCancel(app.controller.Stop)

	// Реакции на жизненный цикл набора
	app.controller.OnState(app.onState)
	app.controller.OnCountdown(app.onCountdown)
	app.controller.OnResult(app.onResult)

	// Создаём обработчик горячих клавиш
	app.hotkey = hotkey.New(app.onStartHotkey, app.onStopHotkey)

	// Перерегистрация при смене клавиш в конфиге
	cfg.OnHotkeysChange(func(start, stop config.HotkeyConfig) {
		if !cfg.HotkeysEnabled() {
			return
		}
		if err := app.hotkey.Register(start, stop); err != nil {
			log.Printf("Ошибка регистрации горячих клавиш: %v", err)
			app.notifier.Error(i18n.T("error_hotkey_register"))
		}
	})

	// Создаём системный трей с обработчиками
	app.tray = tray.New(tray.Callbacks{
		OnOpenWindow: func() {
			app.mainWin.Show()
		},
		OnStopClick: app.controller.Stop,
		OnNotificationsToggle: func() bool {
			enabled := app.config.ToggleNotifications()
			app.notifier.SetEnabled(enabled)
			return enabled
		},
		OnQuit: func() {
			app.Close()
		},
	})

	return app, nil
}

// Run запускает приложение.
func (a *App) Run() {
	a.tray.Run(func() {
		// Регистрируем горячие клавиши после инициализации трея
		if a.config.HotkeysEnabled() {
			if err := a.hotkey.Register(a.config.StartHotkey(), a.config.StopHotkey()); err != nil {
				log.Printf("Ошибка регистрации горячих клавиш: %v", err)
				a.notifier.Error(i18n.T("error_hotkey_register"))
			}
		}

		a.mainWin.Show()
		a.notifier.Info(i18n.T("notify_ready"))
	})
}

// startTyping собирает задание из конфига и текста и запускает его.
func (a *App) startTyping(text string) {
	lang := format.Language(a.config.FormatLanguage())
	prepared := format.Apply(text, lang)
	if prepared == "" {
		a.notifier.Error(i18n.T("error_empty_text"))
		a.mainWin.SetStatus(i18n.T("error_empty_text"))
		return
	}

	job := dispatch.Job{
		Text:       prepared,
		CharDelay:  a.config.CharDelay(),
		StartDelay: a.config.StartDelay(),
	}

	fc := a.config.Focus()
	if fc.Enabled {
		job.FocusTarget = fc.Target
		job.FocusPolicy = dispatch.FocusPolicy(fc.Policy)
		job.OnFocusUnavailable = dispatch.UnavailablePolicy(fc.OnUnavailable)
	}

	if err := a.controller.Start(job); err != nil {
		if errors.Is(err, controller.ErrBusy) {
			// Повторный старт во время набора игнорируется
			log.Printf("Набор уже идёт, старт проигнорирован")
			return
		}
		log.Printf("Ошибка запуска набора: %v", err)
		a.notifier.Error(err.Error())
	}
}

func (a *App) onStartHotkey() {
	a.startTyping(a.mainWin.Text())
}

func (a *App) onStopHotkey() {
	a.controller.Stop()
}

func (a *App) onState(s controller.State) {
	switch s {
	case controller.StateArmed:
		a.tray.SetState(tray.StateArmed)
		a.mainWin.SetTyping(true)
		delay := a.config.StartDelay()
		if delay > 0 {
			a.notifier.Armed(delay)
			a.countdownWin.Show(delay)
		}
	case controller.StateRunning:
		a.countdownWin.Hide()
		a.tray.SetState(tray.StateTyping)
		a.mainWin.SetStatus(i18n.T("status_typing"))
		a.notifier.Typing()
	case controller.StateIdle:
		a.countdownWin.Hide()
		a.tray.SetState(tray.StateIdle)
		a.mainWin.SetTyping(false)
	case controller.StateStopped:
		// Итоговый статус придёт через onResult
	}
}

func (a *App) onCountdown(remaining time.Duration) {
	a.countdownWin.SetRemaining(remaining)
	a.mainWin.SetCountdown(remaining)
}

func (a *App) onResult(res dispatch.Result, err error) {
	if err != nil {
		log.Printf("Набор завершился ошибкой: %v", err)
		msg := i18n.T("error_typing")
		switch {
		case errors.Is(err, dispatch.ErrFocusLost):
			msg = i18n.T("error_focus_lost")
		case errors.Is(err, dispatch.ErrFocusUnavailable):
			msg = i18n.T("error_focus_check")
		}
		a.notifier.Error(msg)
		a.mainWin.SetStatus(msg)
		return
	}

	switch res {
	case dispatch.Completed:
		a.notifier.Done()
		a.mainWin.SetStatus(i18n.T("status_done"))
	case dispatch.Cancelled:
		a.notifier.Stopped()
		a.mainWin.SetStatus(i18n.T("status_stopped"))
	}
}

// loadText открывает диалог выбора файла и подставляет текст в окно.
func (a *App) loadText() {
	go func() {
		text, err := dialog.LoadTextFile()
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				log.Printf("Ошибка загрузки файла: %v", err)
				a.notifier.Error(i18n.T("error_file_load"))
			}
			return
		}
		a.mainWin.SetText(text)
		a.mainWin.SetStatus(i18n.T("status_loaded"))
	}()
}

// saveText сохраняет текст из окна в файл через диалог.
func (a *App) saveText(text string) {
	go func() {
		if err := dialog.SaveTextFile(text); err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				log.Printf("Ошибка сохранения файла: %v", err)
				a.notifier.Error(i18n.T("error_file_save"))
			}
			return
		}
		a.mainWin.SetStatus(i18n.T("status_saved"))
	}()
}

// editHotkeys последовательно спрашивает клавиши запуска и остановки.
func (a *App) editHotkeys() {
	go func() {
		start, err := dialog.SelectHotkey(i18n.T("ui_hotkey_start"), a.config.StartHotkey())
		if err != nil {
			return // Пользователь отменил
		}
		stop, err := dialog.SelectHotkey(i18n.T("ui_hotkey_stop"), a.config.StopHotkey())
		if err != nil {
			return
		}
		if err := a.config.SetHotkeys(start, stop); err != nil {
			dialog.ShowError(i18n.T("ui_hotkeys_section"), i18n.T("error_hotkey_conflict"))
			return
		}
		dialog.ShowInfo(i18n.T("ui_hotkeys_section"), start.String()+" / "+stop.String())
	}()
}

// toggleHotkeys включает или выключает глобальные горячие клавиши.
func (a *App) toggleHotkeys(enabled bool) {
	if enabled {
		if err := a.hotkey.Register(a.config.StartHotkey(), a.config.StopHotkey()); err != nil {
			log.Printf("Ошибка регистрации горячих клавиш: %v", err)
			a.notifier.Error(i18n.T("error_hotkey_register"))
		}
		return
	}
	a.hotkey.Unregister()
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.controller.Stop()

	if a.hotkey != nil {
		a.hotkey.Unregister()
	}

	a.countdownWin.Hide()
	a.mainWin.Hide()

	if a.tray != nil {
		a.tray.Quit()
	}
}
