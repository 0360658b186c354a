//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>
#include <stdlib.h>

void typeChar(unsigned int c) {
    unichar ch = (unichar)c;

    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);

    CGEventKeyboardSetUnicodeString(keyDown, 1, &ch);
    CGEventKeyboardSetUnicodeString(keyUp, 1, &ch);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
}

void pressKeycode(unsigned short keycode) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, keycode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, keycode, false);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
}
*/
import "C"
import "fmt"

// Виртуальные keycode клавиатуры macOS.
const (
	keycodeReturn = 36
	keycodeTab    = 48
)

type darwinTyper struct{}

func newTyper() (Typer, error) {
	return &darwinTyper{}, nil
}

func (t *darwinTyper) TypeRune(r rune) error {
	C.typeChar(C.uint(r))
	return nil
}

func (t *darwinTyper) Press(k Key) error {
	switch k {
	case KeyEnter:
		C.pressKeycode(C.ushort(keycodeReturn))
	case KeyTab:
		C.pressKeycode(C.ushort(keycodeTab))
	default:
		return fmt.Errorf("неизвестная клавиша: %d", k)
	}
	return nil
}
