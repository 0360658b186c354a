//go:build windows

package focus

import (
	"syscall"
	"unsafe"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

type windowsChecker struct{}

func newChecker() Checker {
	return &windowsChecker{}
}

func (c *windowsChecker) Active() (Window, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		// Фокус может быть ни у кого (переключение рабочих столов, экран блокировки)
		return Window{}, ErrUnavailable
	}

	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	return Window{
		Title: syscall.UTF16ToString(buf[:n]),
		PID:   int(pid),
	}, nil
}
