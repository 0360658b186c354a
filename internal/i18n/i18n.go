// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "AutoTyper",
		"app_tooltip": "AutoTyper - simulated keyboard typing",

		// Tray menu
		"tray_ready":              "Idle",
		"tray_armed":              "Armed...",
		"tray_typing":             "Typing...",
		"tray_open":               "Open window",
		"tray_open_hint":          "Show the main window",
		"tray_stop":               "Stop typing",
		"tray_stop_hint":          "Cancel the current run",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close application",

		// Notifications
		"notify_armed":        "Typing starts in",
		"notify_armed_hint":   "Switch to the target window",
		"notify_typing":       "Typing...",
		"notify_typing_hint":  "Press the stop hotkey to cancel",
		"notify_done":         "Typing finished",
		"notify_stopped":      "Typing stopped",
		"notify_stopped_hint": "Cancelled by user",
		"notify_error":        "Error",
		"notify_ready":        "AutoTyper is ready",

		// Countdown window
		"countdown_title": "Get ready",
		"countdown_hint":  "Focus the window you want to type into",

		// Main window
		"ui_title":              "AutoTyper",
		"ui_text_section":       "Text to type",
		"ui_text_hint":          "Paste or type the text here",
		"ui_speed_section":      "Typing speed",
		"ui_char_delay":         "Delay per character",
		"ui_start_delay":        "Start delay",
		"ui_seconds":            "s",
		"ui_language_section":   "Formatting",
		"ui_language_hint":      "Code modes strip trailing spaces per line",
		"ui_focus_section":      "Target window",
		"ui_focus_enable":       "Type only into a matching window",
		"ui_focus_target":       "Window title contains",
		"ui_focus_policy_abort": "Stop when focus is lost",
		"ui_focus_policy_pause": "Pause until focus returns",
		"ui_hotkeys_section":    "Hotkeys",
		"ui_hotkey_start":       "Start",
		"ui_hotkey_stop":        "Stop",
		"ui_hotkeys_enable":     "Global hotkeys",
		"ui_hotkey_edit":        "Edit",
		"ui_restart_on_start":   "Start hotkey restarts typing",
		"ui_start":              "Start",
		"ui_stop":               "Stop",
		"ui_load":               "Load...",
		"ui_save":               "Save...",
		"ui_clear":              "Clear",
		"ui_settings_ui_lang":   "Interface language",

		// Status line
		"status_idle":    "Idle",
		"status_armed":   "Starting in",
		"status_typing":  "Typing...",
		"status_done":    "Finished",
		"status_stopped": "Stopped",
		"status_loaded":  "Text loaded",
		"status_saved":   "Text saved",

		// Speed presets
		"preset_ultra_fast": "Ultra Fast",
		"preset_very_fast":  "Very Fast",
		"preset_fast":       "Fast",
		"preset_normal":     "Normal",
		"preset_slow":       "Slow",
		"preset_very_slow":  "Very Slow",

		// File and hotkey dialogs
		"dialog_open_text":        "Open text file",
		"dialog_save_text":        "Save text file",
		"dialog_modifiers":        "Modifiers",
		"dialog_key":              "Key",
		"dialog_select_modifiers": "Select modifiers:",
		"dialog_select_key":       "Select a key:",

		// Errors
		"error_no_modifier":     "at least one modifier is required",
		"error_empty_text":      "Nothing to type",
		"error_typing":          "Typing failed",
		"error_focus_lost":      "Target window lost focus",
		"error_focus_check":     "Focus check is not available",
		"error_hotkey_register": "Could not register hotkeys",
		"error_hotkey_conflict": "Start and stop hotkeys must differ",
		"error_file_load":       "Could not load file",
		"error_file_save":       "Could not save file",
	},

	RU: {
		// App
		"app_name":    "AutoTyper",
		"app_tooltip": "AutoTyper - эмуляция набора текста",

		// Tray menu
		"tray_ready":              "Ожидание",
		"tray_armed":              "Отсчёт...",
		"tray_typing":             "Набор...",
		"tray_open":               "Открыть окно",
		"tray_open_hint":          "Показать главное окно",
		"tray_stop":               "Остановить набор",
		"tray_stop_hint":          "Отменить текущий набор",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Notifications
		"notify_armed":        "Набор начнётся через",
		"notify_armed_hint":   "Переключитесь в целевое окно",
		"notify_typing":       "Набор...",
		"notify_typing_hint":  "Нажмите стоп-клавишу для отмены",
		"notify_done":         "Набор завершён",
		"notify_stopped":      "Набор остановлен",
		"notify_stopped_hint": "Отменено пользователем",
		"notify_error":        "Ошибка",
		"notify_ready":        "AutoTyper готов к работе",

		// Countdown window
		"countdown_title": "Приготовьтесь",
		"countdown_hint":  "Переключитесь в окно для набора",

		// Main window
		"ui_title":              "AutoTyper",
		"ui_text_section":       "Текст для набора",
		"ui_text_hint":          "Вставьте или введите текст",
		"ui_speed_section":      "Скорость набора",
		"ui_char_delay":         "Задержка на символ",
		"ui_start_delay":        "Стартовая задержка",
		"ui_seconds":            "с",
		"ui_language_section":   "Форматирование",
		"ui_language_hint":      "Режимы кода убирают хвостовые пробелы строк",
		"ui_focus_section":      "Целевое окно",
		"ui_focus_enable":       "Набирать только в подходящем окне",
		"ui_focus_target":       "Заголовок окна содержит",
		"ui_focus_policy_abort": "Останавливать при потере фокуса",
		"ui_focus_policy_pause": "Ждать возврата фокуса",
		"ui_hotkeys_section":    "Горячие клавиши",
		"ui_hotkey_start":       "Запуск",
		"ui_hotkey_stop":        "Остановка",
		"ui_hotkeys_enable":     "Глобальные горячие клавиши",
		"ui_hotkey_edit":        "Изменить",
		"ui_restart_on_start":   "Клавиша запуска перезапускает набор",
		"ui_start":              "Старт",
		"ui_stop":               "Стоп",
		"ui_load":               "Загрузить...",
		"ui_save":               "Сохранить...",
		"ui_clear":              "Очистить",
		"ui_settings_ui_lang":   "Язык интерфейса",

		// Status line
		"status_idle":    "Ожидание",
		"status_armed":   "Старт через",
		"status_typing":  "Набор...",
		"status_done":    "Завершено",
		"status_stopped": "Остановлено",
		"status_loaded":  "Текст загружен",
		"status_saved":   "Текст сохранён",

		// Speed presets
		"preset_ultra_fast": "Сверхбыстро",
		"preset_very_fast":  "Очень быстро",
		"preset_fast":       "Быстро",
		"preset_normal":     "Обычно",
		"preset_slow":       "Медленно",
		"preset_very_slow":  "Очень медленно",

		// File and hotkey dialogs
		"dialog_open_text":        "Открыть текстовый файл",
		"dialog_save_text":        "Сохранить текстовый файл",
		"dialog_modifiers":        "Модификаторы",
		"dialog_key":              "Клавиша",
		"dialog_select_modifiers": "Выберите модификаторы:",
		"dialog_select_key":       "Выберите клавишу:",

		// Errors
		"error_no_modifier":     "нужен хотя бы один модификатор",
		"error_empty_text":      "Нечего набирать",
		"error_typing":          "Ошибка набора",
		"error_focus_lost":      "Целевое окно потеряло фокус",
		"error_focus_check":     "Проверка фокуса недоступна",
		"error_hotkey_register": "Не удалось зарегистрировать горячие клавиши",
		"error_hotkey_conflict": "Клавиши запуска и остановки должны различаться",
		"error_file_load":       "Не удалось загрузить файл",
		"error_file_save":       "Не удалось сохранить файл",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case EN:
		return "English"
	case RU:
		return "Русский"
	default:
		return string(lang)
	}
}
