//go:build darwin

package focus

import (
	"fmt"
	"os/exec"
	"strings"
)

// AppleScript возвращает имя приложения и заголовок переднего окна.
const frontWindowScript = `
tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	try
		tell frontApp
			set windowTitle to name of front window
		end tell
		return appName & " - " & windowTitle
	on error
		return appName
	end try
end tell
`

type darwinChecker struct{}

func newChecker() Checker {
	return &darwinChecker{}
}

func (c *darwinChecker) Active() (Window, error) {
	out, err := exec.Command("osascript", "-e", frontWindowScript).Output()
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Window{Title: strings.TrimSpace(string(out))}, nil
}
