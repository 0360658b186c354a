// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// Equal сравнивает две горячие клавиши.
func (h HotkeyConfig) Equal(other HotkeyConfig) bool {
	return h.String() == other.String()
}

// Validate проверяет что клавиша задана и есть хотя бы один модификатор.
// Горячая клавиша без модификаторов перехватывала бы обычный набор текста.
func (h HotkeyConfig) Validate() error {
	if h.Key == "" {
		return errors.New("не выбрана клавиша")
	}
	if len(h.Modifiers) == 0 {
		return errors.New("нужен хотя бы один модификатор")
	}
	return nil
}

// FocusConfig хранит настройки привязки набора к окну.
type FocusConfig struct {
	Enabled bool   `json:"enabled"`
	Target  string `json:"target,omitempty"` // подстрока заголовка окна
	// Policy - реакция на потерю фокуса: abort или pause
	Policy string `json:"policy,omitempty"`
	// OnUnavailable - если фокус проверить нельзя: proceed или abort
	OnUnavailable string `json:"on_unavailable,omitempty"`
}

// configData структура для сериализации.
type configData struct {
	CharDelayMS    int          `json:"char_delay_ms"`
	StartDelayMS   int          `json:"start_delay_ms"`
	FormatLanguage string       `json:"format_language,omitempty"`
	Focus          FocusConfig  `json:"focus"`
	StartHotkey    HotkeyConfig `json:"start_hotkey"`
	StopHotkey     HotkeyConfig `json:"stop_hotkey"`
	HotkeysEnabled bool         `json:"hotkeys_enabled"`
	RestartOnStart bool         `json:"restart_on_start"`
	Notifications  bool         `json:"notifications"`
	UILanguage     string       `json:"ui_language,omitempty"`
}

// Config хранит настройки приложения.
type Config struct {
	mu              sync.RWMutex
	charDelay       time.Duration
	startDelay      time.Duration
	formatLanguage  string
	focus           FocusConfig
	startHotkey     HotkeyConfig
	stopHotkey      HotkeyConfig
	hotkeysEnabled  bool
	restartOnStart  bool
	notifications   bool
	uiLanguage      string
	configPath      string
	onHotkeysChange func(start, stop HotkeyConfig)
}

// New создаёт конфигурацию, загружая из файла рядом с бинарником
// или с настройками по умолчанию.
func New() *Config {
	path := ""
	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			path = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}
	return NewAt(path)
}

// NewAt создаёт конфигурацию с явным путём к файлу.
func NewAt(path string) *Config {
	c := &Config{
		charDelay:      50 * time.Millisecond,
		startDelay:     3 * time.Second,
		formatLanguage: "text",
		focus: FocusConfig{
			Policy:        "abort",
			OnUnavailable: "proceed",
		},
		startHotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeyS,
		},
		stopHotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeyX,
		},
		hotkeysEnabled: true,
		notifications:  true,
		uiLanguage:     "en",
		configPath:     path,
	}

	c.load()
	return c
}

// load загружает конфигурацию из файла.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	if cfg.CharDelayMS >= 0 {
		c.charDelay = time.Duration(cfg.CharDelayMS) * time.Millisecond
	}
	if cfg.StartDelayMS >= 0 {
		c.startDelay = time.Duration(cfg.StartDelayMS) * time.Millisecond
	}
	if cfg.FormatLanguage != "" {
		c.formatLanguage = cfg.FormatLanguage
	}
	c.focus.Enabled = cfg.Focus.Enabled
	c.focus.Target = cfg.Focus.Target
	if cfg.Focus.Policy != "" {
		c.focus.Policy = cfg.Focus.Policy
	}
	if cfg.Focus.OnUnavailable != "" {
		c.focus.OnUnavailable = cfg.Focus.OnUnavailable
	}
	// Пара горячих клавиш принимается только целиком: валидная
	// моя плюс конфликтующая чужая дали бы одинаковый старт/стоп
	if cfg.StartHotkey.Validate() == nil && cfg.StopHotkey.Validate() == nil &&
		!cfg.StartHotkey.Equal(cfg.StopHotkey) {
		c.startHotkey = cfg.StartHotkey
		c.stopHotkey = cfg.StopHotkey
	}
	c.hotkeysEnabled = cfg.HotkeysEnabled
	c.restartOnStart = cfg.RestartOnStart
	c.notifications = cfg.Notifications
	if cfg.UILanguage != "" {
		c.uiLanguage = cfg.UILanguage
	}
}

// save сохраняет конфигурацию в файл.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	cfg := configData{
		CharDelayMS:    int(c.charDelay / time.Millisecond),
		StartDelayMS:   int(c.startDelay / time.Millisecond),
		FormatLanguage: c.formatLanguage,
		Focus:          c.focus,
		StartHotkey:    c.startHotkey,
		StopHotkey:     c.stopHotkey,
		HotkeysEnabled: c.hotkeysEnabled,
		RestartOnStart: c.restartOnStart,
		Notifications:  c.notifications,
		UILanguage:     c.uiLanguage,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

// CharDelay возвращает задержку между символами.
func (c *Config) CharDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.charDelay
}

// SetCharDelay устанавливает задержку между символами.
func (c *Config) SetCharDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charDelay = d
	c.save()
}

// StartDelay возвращает задержку перед началом набора.
func (c *Config) StartDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startDelay
}

// SetStartDelay устанавливает задержку перед началом набора.
func (c *Config) SetStartDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startDelay = d
	c.save()
}

// FormatLanguage возвращает язык форматирования текста.
func (c *Config) FormatLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.formatLanguage
}

// SetFormatLanguage устанавливает язык форматирования текста.
func (c *Config) SetFormatLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formatLanguage = lang
	c.save()
}

// Focus возвращает настройки привязки к окну.
func (c *Config) Focus() FocusConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.focus
}

// SetFocus устанавливает настройки привязки к окну.
func (c *Config) SetFocus(fc FocusConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focus = fc
	c.save()
}

// StartHotkey возвращает горячую клавишу запуска.
func (c *Config) StartHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startHotkey
}

// StopHotkey возвращает горячую клавишу остановки.
func (c *Config) StopHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopHotkey
}

// SetHotkeys устанавливает пару горячих клавиш. Отклоняет невалидные
// сочетания и совпадающие старт/стоп.
func (c *Config) SetHotkeys(start, stop HotkeyConfig) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := stop.Validate(); err != nil {
		return err
	}
	if start.Equal(stop) {
		return errors.New("клавиши запуска и остановки должны различаться")
	}

	c.mu.Lock()
	c.startHotkey = start
	c.stopHotkey = stop
	callback := c.onHotkeysChange
	c.save()
	c.mu.Unlock()

	if callback != nil {
		callback(start, stop)
	}
	return nil
}

// OnHotkeysChange устанавливает callback для изменения горячих клавиш.
func (c *Config) OnHotkeysChange(fn func(start, stop HotkeyConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHotkeysChange = fn
}

// HotkeysEnabled возвращает true если глобальные горячие клавиши включены.
func (c *Config) HotkeysEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkeysEnabled
}

// SetHotkeysEnabled включает/выключает глобальные горячие клавиши.
func (c *Config) SetHotkeysEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hotkeysEnabled = enabled
	c.save()
}

// RestartOnStart возвращает политику повторного старта.
func (c *Config) RestartOnStart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.restartOnStart
}

// SetRestartOnStart устанавливает политику повторного старта.
func (c *Config) SetRestartOnStart(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restartOnStart = enabled
	c.save()
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = enabled
	c.save()
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = !c.notifications
	c.save()
	return c.notifications
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifications
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uiLanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uiLanguage = lang
	c.save()
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}
