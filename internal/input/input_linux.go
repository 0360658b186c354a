//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
)

type linuxTyper struct {
	useWayland bool
}

func newTyper() (Typer, error) {
	t := &linuxTyper{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	return t, nil
}

func (t *linuxTyper) TypeRune(r rune) error {
	if t.useWayland {
		return run(exec.Command("wtype", string(r)))
	}
	return run(exec.Command("xdotool", "type", "--clearmodifiers", "--", string(r)))
}

func (t *linuxTyper) Press(k Key) error {
	name, ok := keyNames[k]
	if !ok {
		return fmt.Errorf("неизвестная клавиша: %d", k)
	}
	if t.useWayland {
		return run(exec.Command("wtype", "-k", name))
	}
	return run(exec.Command("xdotool", "key", "--clearmodifiers", name))
}

// keyNames - имена клавиш в нотации xdotool/wtype.
var keyNames = map[Key]string{
	KeyEnter: "Return",
	KeyTab:   "Tab",
}

func run(cmd *exec.Cmd) error {
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}
