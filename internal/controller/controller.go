// Package controller управляет жизненным циклом набора: переходы
// между состояниями, стартовый отсчёт и остановка по требованию.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/creator79/AutoTyper/internal/dispatch"
)

// ErrBusy - попытка запуска пока предыдущий набор не завершён.
var ErrBusy = errors.New("набор уже запущен")

// State - состояние контроллера.
type State int

const (
	// StateIdle - набора нет, запуск разрешён.
	StateIdle State = iota
	// StateArmed - идёт стартовый отсчёт.
	StateArmed
	// StateRunning - идёт набор.
	StateRunning
	// StateStopped - остановка принята, рабочая горутина завершается.
	StateStopped
)

// String возвращает строковое представление состояния.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// расстояние между обновлениями отсчёта
const countdownTick = 100 * time.Millisecond

// Controller сериализует запуски набора. Одновременно выполняется не
// больше одного задания, Stop действует и на отсчёте и на наборе.
type Controller struct {
	mu         sync.Mutex
	dispatcher *dispatch.Dispatcher
	state      State
	cancel     context.CancelFunc
	done       chan struct{}

	// restartOnStart - старт во время набора перезапускает задание
	// вместо игнорирования
	restartOnStart bool

	onState     func(State)
	onCountdown func(remaining time.Duration)
	onResult    func(dispatch.Result, error)
}

// New создаёт контроллер поверх диспетчера.
func New(d *dispatch.Dispatcher) *Controller {
	return &Controller{dispatcher: d}
}

// SetRestartOnStart задаёт политику повторного старта.
func (c *Controller) SetRestartOnStart(enabled bool) {
	c.mu.Lock()
	c.restartOnStart = enabled
	c.mu.Unlock()
}

// OnState устанавливает callback смены состояния.
func (c *Controller) OnState(fn func(State)) {
	c.mu.Lock()
	c.onState = fn
	c.mu.Unlock()
}

// OnCountdown устанавливает callback обновления стартового отсчёта.
func (c *Controller) OnCountdown(fn func(time.Duration)) {
	c.mu.Lock()
	c.onCountdown = fn
	c.mu.Unlock()
}

// OnResult устанавливает callback завершения набора.
func (c *Controller) OnResult(fn func(dispatch.Result, error)) {
	c.mu.Lock()
	c.onResult = fn
	c.mu.Unlock()
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start принимает задание и запускает отсчёт. Если набор уже идёт,
// поведение зависит от политики: по умолчанию повторный старт
// игнорируется (ErrBusy), с restartOnStart текущий набор отменяется
// и задание стартует заново.
func (c *Controller) Start(job dispatch.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateIdle {
		if !c.restartOnStart {
			c.mu.Unlock()
			return ErrBusy
		}
		cancel := c.cancel
		done := c.done
		c.mu.Unlock()

		// Дожидаемся выхода рабочей горутины, иначе два набора
		// будут печатать вперемешку
		if cancel != nil {
			cancel()
		}
		if done != nil {
			<-done
		}
		c.mu.Lock()
		if c.state != StateIdle {
			c.mu.Unlock()
			return ErrBusy
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.state = StateArmed
	notify := c.onState
	c.mu.Unlock()

	if notify != nil {
		notify(StateArmed)
	}

	go c.run(ctx, cancel, done, job)
	return nil
}

// Stop останавливает отсчёт или набор. Повторные вызовы и вызов без
// активного набора безопасны.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == StateIdle || c.state == StateStopped {
		c.mu.Unlock()
		return
	}
	c.state = StateStopped
	cancel := c.cancel
	notify := c.onState
	c.mu.Unlock()

	if notify != nil {
		notify(StateStopped)
	}
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, job dispatch.Job) {
	defer close(done)
	defer cancel()
	defer c.finish()

	// Стартовый отсчёт. Набор не начинается пока отсчёт не истёк,
	// пользователь успевает переключиться в целевое окно
	if job.StartDelay > 0 && !c.countdown(ctx, job.StartDelay) {
		c.report(dispatch.Cancelled, nil)
		return
	}
	if ctx.Err() != nil {
		c.report(dispatch.Cancelled, nil)
		return
	}

	c.transition(StateRunning)

	res, err := c.dispatcher.Run(ctx, job)
	c.report(res, err)
}

// countdown ждёт истечения стартовой задержки, сообщая остаток через
// callback. Возвращает false при отмене.
func (c *Controller) countdown(ctx context.Context, delay time.Duration) bool {
	deadline := time.Now().Add(delay)
	ticker := time.NewTicker(countdownTick)
	defer ticker.Stop()

	c.reportCountdown(delay)
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			remaining := time.Until(deadline)
			if remaining <= 0 {
				c.reportCountdown(0)
				return true
			}
			c.reportCountdown(remaining)
		}
	}
}

// transition переводит контроллер в состояние s, кроме случая когда
// уже принята остановка.
func (c *Controller) transition(s State) {
	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		return
	}
	c.state = s
	notify := c.onState
	c.mu.Unlock()

	if notify != nil {
		notify(s)
	}
}

// finish возвращает контроллер в Idle после выхода рабочей горутины.
func (c *Controller) finish() {
	c.mu.Lock()
	c.state = StateIdle
	c.cancel = nil
	c.done = nil
	notify := c.onState
	c.mu.Unlock()

	if notify != nil {
		notify(StateIdle)
	}
}

func (c *Controller) report(res dispatch.Result, err error) {
	c.mu.Lock()
	notify := c.onResult
	c.mu.Unlock()

	if notify != nil {
		notify(res, err)
	}
}

func (c *Controller) reportCountdown(remaining time.Duration) {
	c.mu.Lock()
	notify := c.onCountdown
	c.mu.Unlock()

	if notify != nil {
		notify(remaining)
	}
}
