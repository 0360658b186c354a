//go:build windows

package input

import (
	"fmt"
	"syscall"
	"unicode/utf16"
	"unsafe"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard = 1

	keyEventFKeyUp   = 0x0002
	keyEventFUnicode = 0x0004

	vkReturn = 0x0D
	vkTab    = 0x09
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type inputEvent struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type windowsTyper struct{}

func newTyper() (Typer, error) {
	return &windowsTyper{}, nil
}

func (t *windowsTyper) TypeRune(r rune) error {
	units := utf16.Encode([]rune{r})
	inputs := make([]inputEvent, 0, len(units)*2)

	for _, u := range units {
		inputs = append(inputs, inputEvent{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   u,
				dwFlags: keyEventFUnicode,
			},
		})
		inputs = append(inputs, inputEvent{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   u,
				dwFlags: keyEventFUnicode | keyEventFKeyUp,
			},
		})
	}

	return send(inputs)
}

func (t *windowsTyper) Press(k Key) error {
	var vk uint16
	switch k {
	case KeyEnter:
		vk = vkReturn
	case KeyTab:
		vk = vkTab
	default:
		return fmt.Errorf("неизвестная клавиша: %d", k)
	}

	inputs := []inputEvent{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, dwFlags: keyEventFKeyUp}},
	}
	return send(inputs)
}

func send(inputs []inputEvent) error {
	if len(inputs) == 0 {
		return nil
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if int(sent) != len(inputs) {
		// SendInput блокируется UIPI если целевое окно привилегированное
		return fmt.Errorf("SendInput: отправлено %d из %d: %v", sent, len(inputs), err)
	}
	return nil
}
