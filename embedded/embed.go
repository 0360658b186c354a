// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии ожидания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconArmed - иконка во время стартового отсчёта (оранжевая).
//
//go:embed icon_armed.png
var IconArmed []byte

// IconTyping - иконка во время набора (зелёная).
//
//go:embed icon_typing.png
var IconTyping []byte
