//go:build linux

package focus

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type linuxChecker struct {
	useWayland bool
}

func newChecker() Checker {
	return &linuxChecker{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
}

func (c *linuxChecker) Active() (Window, error) {
	// На Wayland нет универсального способа узнать активное окно -
	// деградируем до "проверка недоступна"
	if c.useWayland {
		return Window{}, ErrUnavailable
	}
	return activeX11()
}

func activeX11() (Window, error) {
	out, err := exec.Command("xdotool", "getactivewindow", "getwindowname").Output()
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	win := Window{Title: strings.TrimSpace(string(out))}

	// PID опционален: не все окна его публикуют
	if out, err := exec.Command("xdotool", "getactivewindow", "getwindowpid").Output(); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil {
			win.PID = pid
		}
	}
	return win, nil
}
