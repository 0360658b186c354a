// Package focus предоставляет определение активного окна.
package focus

import (
	"errors"
	"strings"
)

// ErrUnavailable возвращается когда определить активное окно невозможно
// (нет нужных утилит, неподдерживаемый дисплейный сервер и т.п.).
var ErrUnavailable = errors.New("определение активного окна недоступно")

// Window описывает активное окно.
type Window struct {
	Title string
	PID   int
}

// Matches проверяет совпадение окна с целью. Сравнение - по вхождению
// подстроки в заголовок без учёта регистра, как в оригинальных
// инструментах автонабора.
func (w Window) Matches(target string) bool {
	if target == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Title), strings.ToLower(target))
}

// Checker возвращает текущее активное окно.
type Checker interface {
	// Active возвращает окно с фокусом ввода или ErrUnavailable.
	Active() (Window, error)
}

// New создаёт платформо-специфичный Checker.
func New() Checker {
	return newChecker()
}
