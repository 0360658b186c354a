// AutoTyper - кроссплатформенное приложение для эмуляции набора текста.
//
// Работает в системном трее, слушает Ctrl+Shift+S для запуска набора
// и Ctrl+Shift+X для остановки. Набирает текст в активное окно
// посимвольно с настраиваемой скоростью.
package main

import (
	"log"
	"os"

	"github.com/creator79/AutoTyper/internal/app"
	"github.com/creator79/AutoTyper/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("AutoTyper %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Println("Приложение запущено. Нажмите Ctrl+Shift+S для набора.")
	application.Run()
}
