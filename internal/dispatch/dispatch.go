// Package dispatch реализует цикл набора текста: посимвольную эмуляцию
// нажатий с настраиваемой задержкой, реагирующую на отмену.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creator79/AutoTyper/internal/focus"
	"github.com/creator79/AutoTyper/internal/input"
)

const (
	// MaxCharDelay - максимальная задержка между символами.
	MaxCharDelay = 2 * time.Second
	// MaxStartDelay - максимальная задержка перед началом набора.
	MaxStartDelay = 60 * time.Second

	// sleepSlice - квант сна. Отмена замечается не позже чем через
	// один квант, даже при больших задержках между символами.
	sleepSlice = 10 * time.Millisecond

	// focusPollInterval - период опроса фокуса в режиме паузы.
	focusPollInterval = 250 * time.Millisecond
)

var (
	// ErrConfig - некорректные параметры задания, отклоняются до старта.
	ErrConfig = errors.New("некорректные параметры набора")
	// ErrFocusLost - целевое окно потеряло фокус (политика abort).
	ErrFocusLost = errors.New("целевое окно потеряло фокус")
	// ErrFocusUnavailable - проверка фокуса недоступна на этой платформе.
	ErrFocusUnavailable = errors.New("проверка фокуса недоступна")
	// ErrEmission - системная эмуляция ввода завершилась ошибкой.
	ErrEmission = errors.New("ошибка эмуляции ввода")
)

// FocusPolicy определяет реакцию на потерю фокуса целевым окном.
type FocusPolicy string

const (
	// FocusAbort - прервать набор и вернуть ErrFocusLost.
	FocusAbort FocusPolicy = "abort"
	// FocusPause - приостановить набор до возврата фокуса.
	FocusPause FocusPolicy = "pause"
)

// UnavailablePolicy определяет что делать если фокус проверить нельзя.
type UnavailablePolicy string

const (
	// UnavailableProceed - продолжать без ограничения по окну.
	UnavailableProceed UnavailablePolicy = "proceed"
	// UnavailableAbort - прервать набор.
	UnavailableAbort UnavailablePolicy = "abort"
)

// Job описывает одно задание набора. Неизменяемо на время запуска.
type Job struct {
	Text       string
	CharDelay  time.Duration
	StartDelay time.Duration // отрабатывается контроллером в состоянии Armed

	FocusTarget        string // подстрока заголовка окна, пустая - без ограничения
	FocusPolicy        FocusPolicy
	OnFocusUnavailable UnavailablePolicy
}

// Validate проверяет параметры задания. Ошибки конфигурации никогда
// не всплывают посреди набора.
func (j Job) Validate() error {
	if j.Text == "" {
		return fmt.Errorf("%w: пустой текст", ErrConfig)
	}
	if j.CharDelay < 0 || j.CharDelay > MaxCharDelay {
		return fmt.Errorf("%w: задержка символа %v вне диапазона 0-%v", ErrConfig, j.CharDelay, MaxCharDelay)
	}
	if j.StartDelay < 0 || j.StartDelay > MaxStartDelay {
		return fmt.Errorf("%w: стартовая задержка %v вне диапазона 0-%v", ErrConfig, j.StartDelay, MaxStartDelay)
	}
	return nil
}

// Result - итог завершившегося набора.
type Result int

const (
	// Completed - весь текст набран.
	Completed Result = iota
	// Cancelled - набор остановлен пользователем. Не ошибка.
	Cancelled
)

// String возвращает строковое представление результата.
func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Dispatcher выполняет задания набора. Эмуляция нажатий и проверка
// фокуса подменяются через интерфейсы - в тестах вместо системных
// событий используются заглушки.
type Dispatcher struct {
	typer   input.Typer
	checker focus.Checker
}

// New создаёт Dispatcher.
func New(typer input.Typer, checker focus.Checker) *Dispatcher {
	return &Dispatcher{typer: typer, checker: checker}
}

// Run набирает текст задания посимвольно. Завершается при исчерпании
// текста (Completed), отмене ctx (Cancelled) или ошибке. Частичный
// вывод при отмене ожидаем - отката нет.
func (d *Dispatcher) Run(ctx context.Context, job Job) (Result, error) {
	if err := job.Validate(); err != nil {
		return Cancelled, err
	}

	lines := strings.Split(job.Text, "\n")
	for li, line := range lines {
		// Фокус проверяется раз на строку: опрос окна дороже
		// эмуляции символа, посимвольная проверка не окупается
		if job.FocusTarget != "" {
			if err := d.ensureFocus(ctx, job); err != nil {
				return asResult(err)
			}
		}

		for _, r := range line {
			if ctx.Err() != nil {
				return Cancelled, nil
			}
			if r == '\t' {
				if err := d.typer.Press(input.KeyTab); err != nil {
					return Cancelled, fmt.Errorf("%w: %w", ErrEmission, err)
				}
				// Tab набирается быстрее обычного символа
				if err := sleep(ctx, job.CharDelay/2); err != nil {
					return Cancelled, nil
				}
				continue
			}
			if err := d.typer.TypeRune(r); err != nil {
				return Cancelled, fmt.Errorf("%w: %w", ErrEmission, err)
			}
			if err := sleep(ctx, job.CharDelay); err != nil {
				return Cancelled, nil
			}
		}

		// Перевод строки после каждой строки кроме последней
		if li < len(lines)-1 {
			if ctx.Err() != nil {
				return Cancelled, nil
			}
			if err := d.typer.Press(input.KeyEnter); err != nil {
				return Cancelled, fmt.Errorf("%w: %w", ErrEmission, err)
			}
			if err := sleep(ctx, job.CharDelay*6/10); err != nil {
				return Cancelled, nil
			}
		}
	}

	return Completed, nil
}

// ensureFocus проверяет что целевое окно держит фокус. В режиме
// FocusPause блокируется до возврата фокуса или отмены.
func (d *Dispatcher) ensureFocus(ctx context.Context, job Job) error {
	for {
		win, err := d.checker.Active()
		if err != nil {
			if job.OnFocusUnavailable == UnavailableAbort {
				return fmt.Errorf("%w: %w", ErrFocusUnavailable, err)
			}
			// Проверка недоступна - работаем без ограничения
			return nil
		}

		if win.Matches(job.FocusTarget) {
			return nil
		}

		if job.FocusPolicy != FocusPause {
			return fmt.Errorf("%w: активно %q, ожидалось %q", ErrFocusLost, win.Title, job.FocusTarget)
		}

		if err := sleep(ctx, focusPollInterval); err != nil {
			return err
		}
	}
}

// asResult переводит ошибку ensureFocus в итог запуска: отмена во
// время ожидания фокуса - это Cancelled, а не ошибка.
func asResult(err error) (Result, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Cancelled, nil
	}
	return Cancelled, err
}

// sleep спит d квантами sleepSlice, прерываясь по отмене ctx.
func sleep(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		if remaining > sleepSlice {
			remaining = sleepSlice
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
