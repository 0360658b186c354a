package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewAt("")

	assert.Equal(t, 50*time.Millisecond, c.CharDelay())
	assert.Equal(t, 3*time.Second, c.StartDelay())
	assert.Equal(t, "text", c.FormatLanguage())
	assert.False(t, c.Focus().Enabled)
	assert.Equal(t, "abort", c.Focus().Policy)
	assert.Equal(t, "proceed", c.Focus().OnUnavailable)
	assert.Equal(t, "ctrl+shift+s", c.StartHotkey().String())
	assert.Equal(t, "ctrl+shift+x", c.StopHotkey().String())
	assert.True(t, c.HotkeysEnabled())
	assert.False(t, c.RestartOnStart())
	assert.True(t, c.NotificationsEnabled())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := NewAt(path)
	c.SetCharDelay(time.Millisecond)
	c.SetStartDelay(10 * time.Second)
	c.SetFormatLanguage("python")
	c.SetFocus(FocusConfig{Enabled: true, Target: "editor", Policy: "pause", OnUnavailable: "abort"})
	c.SetRestartOnStart(true)
	require.NoError(t, c.SetHotkeys(
		HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyF5},
		HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyF6},
	))

	loaded := NewAt(path)
	assert.Equal(t, time.Millisecond, loaded.CharDelay())
	assert.Equal(t, 10*time.Second, loaded.StartDelay())
	assert.Equal(t, "python", loaded.FormatLanguage())
	assert.Equal(t, FocusConfig{Enabled: true, Target: "editor", Policy: "pause", OnUnavailable: "abort"}, loaded.Focus())
	assert.True(t, loaded.RestartOnStart())
	assert.Equal(t, "alt+f5", loaded.StartHotkey().String())
	assert.Equal(t, "alt+f6", loaded.StopHotkey().String())
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	c := NewAt(path)
	assert.Equal(t, 50*time.Millisecond, c.CharDelay())
}

func TestHotkeyValidation(t *testing.T) {
	c := NewAt("")

	valid := HotkeyConfig{Modifiers: []Modifier{ModCtrl}, Key: KeyA}

	err := c.SetHotkeys(HotkeyConfig{Key: KeyA}, valid)
	assert.Error(t, err, "без модификаторов")

	err = c.SetHotkeys(HotkeyConfig{Modifiers: []Modifier{ModCtrl}}, valid)
	assert.Error(t, err, "без клавиши")

	err = c.SetHotkeys(valid, valid)
	assert.Error(t, err, "старт и стоп совпадают")

	// Отклонённые сочетания не затирают текущие
	assert.Equal(t, "ctrl+shift+s", c.StartHotkey().String())
}

func TestLoadRejectsConflictingHotkeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"start_hotkey": {"modifiers": ["ctrl"], "key": "a"},
		"stop_hotkey": {"modifiers": ["ctrl"], "key": "a"},
		"hotkeys_enabled": true,
		"notifications": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c := NewAt(path)
	assert.Equal(t, "ctrl+shift+s", c.StartHotkey().String())
	assert.Equal(t, "ctrl+shift+x", c.StopHotkey().String())
}

func TestOnHotkeysChange(t *testing.T) {
	c := NewAt("")

	var gotStart, gotStop string
	c.OnHotkeysChange(func(start, stop HotkeyConfig) {
		gotStart = start.String()
		gotStop = stop.String()
	})

	require.NoError(t, c.SetHotkeys(
		HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModAlt}, Key: KeyT},
		HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModAlt}, Key: KeyU},
	))
	assert.Equal(t, "ctrl+alt+t", gotStart)
	assert.Equal(t, "ctrl+alt+u", gotStop)
}
