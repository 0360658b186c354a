// Package input предоставляет эмуляцию нажатий клавиш в активном окне.
package input

// Key представляет специальную клавишу.
type Key int

const (
	KeyEnter Key = iota
	KeyTab
)

// Typer эмулирует нажатия клавиш. Для каждого символа генерируется
// пара событий нажатие/отпускание.
type Typer interface {
	// TypeRune вводит один символ в текущее активное поле.
	TypeRune(r rune) error
	// Press нажимает специальную клавишу (Enter, Tab).
	Press(k Key) error
}

// New создаёт платформо-специфичный Typer.
func New() (Typer, error) {
	return newTyper()
}
