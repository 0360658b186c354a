// Package hotkey предоставляет глобальные горячие клавиши.
package hotkey

import (
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"github.com/creator79/AutoTyper/internal/config"
)

// binding - одна зарегистрированная горячая клавиша со своим listener'ом.
type binding struct {
	hk     *hotkey.Hotkey
	stopCh chan struct{}
}

// Handler обрабатывает пару глобальных горячих клавиш: запуск и
// остановка набора.
type Handler struct {
	mu      sync.Mutex
	start   *binding
	stop    *binding
	onStart func()
	onStop  func()
	current [2]config.HotkeyConfig
}

// New создаёт обработчик горячих клавиш.
func New(onStart, onStop func()) *Handler {
	return &Handler{
		onStart: onStart,
		onStop:  onStop,
	}
}

// Register регистрирует пару горячих клавиш, снимая предыдущую.
// Регистрация атомарна: если вторая клавиша не встала, первая
// снимается и действующей пары не остаётся.
func (h *Handler) Register(start, stop config.HotkeyConfig) error {
	log.Printf("Регистрация горячих клавиш: старт %s, стоп %s", start.String(), stop.String())

	h.Unregister()

	// Даём время listener'ам завершиться
	time.Sleep(50 * time.Millisecond)

	startB, err := register(start, h.fireStart)
	if err != nil {
		log.Printf("Ошибка регистрации %s: %v", start.String(), err)
		return err
	}
	stopB, err := register(stop, h.fireStop)
	if err != nil {
		log.Printf("Ошибка регистрации %s: %v", stop.String(), err)
		unregister(startB)
		return err
	}

	h.mu.Lock()
	h.start = startB
	h.stop = stopB
	h.current = [2]config.HotkeyConfig{start, stop}
	h.mu.Unlock()

	log.Printf("Горячие клавиши успешно зарегистрированы")
	return nil
}

// Unregister снимает обе горячие клавиши.
func (h *Handler) Unregister() {
	h.mu.Lock()
	startB, stopB := h.start, h.stop
	h.start, h.stop = nil, nil
	h.current = [2]config.HotkeyConfig{}
	h.mu.Unlock()

	unregister(startB)
	unregister(stopB)
}

// Current возвращает текущую зарегистрированную пару (старт, стоп).
func (h *Handler) Current() (config.HotkeyConfig, config.HotkeyConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current[0], h.current[1]
}

func (h *Handler) fireStart() {
	if h.onStart != nil {
		h.onStart()
	}
}

func (h *Handler) fireStop() {
	if h.onStop != nil {
		h.onStop()
	}
}

// register создаёт и регистрирует одну горячую клавишу и запускает
// её listener.
func register(cfg config.HotkeyConfig, onPress func()) (*binding, error) {
	// Конвертируем модификаторы
	mods := make([]hotkey.Modifier, 0, len(cfg.Modifiers))
	for _, m := range cfg.Modifiers {
		if mod, ok := modifierMap[m]; ok {
			mods = append(mods, mod)
		}
	}

	// Конвертируем клавишу
	key, ok := keyMap[cfg.Key]
	if !ok {
		key = hotkey.KeySpace // fallback
	}

	b := &binding{
		hk:     hotkey.New(mods, key),
		stopCh: make(chan struct{}),
	}
	if err := b.hk.Register(); err != nil {
		return nil, err
	}

	go b.listen(onPress)
	return b, nil
}

// unregister снимает регистрацию с таймаутом: Unregister на некоторых
// платформах может зависнуть.
func unregister(b *binding) {
	if b == nil {
		return
	}

	close(b.stopCh)

	done := make(chan struct{})
	go func() {
		b.hk.Unregister()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		log.Printf("Hotkey unregister timeout")
	}
}

func (b *binding) listen(onPress func()) {
	var lastKeydown time.Time
	const debounceInterval = 300 * time.Millisecond // Защита от key repeat

	for {
		select {
		case <-b.stopCh:
			return
		case _, ok := <-b.hk.Keydown():
			if !ok {
				return
			}
			// Debounce: игнорируем повторные keydown от key repeat
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			onPress()
		case _, ok := <-b.hk.Keyup():
			if !ok {
				return
			}
			// Keyup не используется, клавиши работают как триггеры
		}
	}
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг config.Key -> hotkey.Key
var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyTab:    hotkey.KeyTab,
	config.KeyA:      hotkey.KeyA,
	config.KeyB:      hotkey.KeyB,
	config.KeyC:      hotkey.KeyC,
	config.KeyD:      hotkey.KeyD,
	config.KeyE:      hotkey.KeyE,
	config.KeyF:      hotkey.KeyF,
	config.KeyG:      hotkey.KeyG,
	config.KeyH:      hotkey.KeyH,
	config.KeyI:      hotkey.KeyI,
	config.KeyJ:      hotkey.KeyJ,
	config.KeyK:      hotkey.KeyK,
	config.KeyL:      hotkey.KeyL,
	config.KeyM:      hotkey.KeyM,
	config.KeyN:      hotkey.KeyN,
	config.KeyO:      hotkey.KeyO,
	config.KeyP:      hotkey.KeyP,
	config.KeyQ:      hotkey.KeyQ,
	config.KeyR:      hotkey.KeyR,
	config.KeyS:      hotkey.KeyS,
	config.KeyT:      hotkey.KeyT,
	config.KeyU:      hotkey.KeyU,
	config.KeyV:      hotkey.KeyV,
	config.KeyW:      hotkey.KeyW,
	config.KeyX:      hotkey.KeyX,
	config.KeyY:      hotkey.KeyY,
	config.KeyZ:      hotkey.KeyZ,
	config.KeyF1:     hotkey.KeyF1,
	config.KeyF2:     hotkey.KeyF2,
	config.KeyF3:     hotkey.KeyF3,
	config.KeyF4:     hotkey.KeyF4,
	config.KeyF5:     hotkey.KeyF5,
	config.KeyF6:     hotkey.KeyF6,
	config.KeyF7:     hotkey.KeyF7,
	config.KeyF8:     hotkey.KeyF8,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
	config.KeyF11:    hotkey.KeyF11,
	config.KeyF12:    hotkey.KeyF12,
}
