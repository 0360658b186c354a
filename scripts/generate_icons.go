//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon_idle.png", color.RGBA{128, 128, 128, 255}},  // Серый
		{"icon_armed.png", color.RGBA{230, 160, 50, 255}},  // Оранжевый
		{"icon_typing.png", color.RGBA{80, 200, 120, 255}}, // Зелёный
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Рисуем клавишу (скруглённый квадрат)
	const margin = 10
	const corner = 6
	for y := margin; y < size-margin; y++ {
		for x := margin; x < size-margin; x++ {
			// Срезаем углы
			dx, dy := 0, 0
			if x < margin+corner {
				dx = margin + corner - x
			} else if x >= size-margin-corner {
				dx = x - (size - margin - corner) + 1
			}
			if y < margin+corner {
				dy = margin + corner - y
			} else if y >= size-margin-corner {
				dy = y - (size - margin - corner) + 1
			}
			if dx*dx+dy*dy <= corner*corner {
				img.Set(x, y, c)
			}
		}
	}

	// Тёмная полоска внизу клавиши (пробел)
	bar := color.RGBA{c.R / 3, c.G / 3, c.B / 3, 255}
	for y := size - margin - 12; y < size-margin-6; y++ {
		for x := margin + 10; x < size-margin-10; x++ {
			img.Set(x, y, bar)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
