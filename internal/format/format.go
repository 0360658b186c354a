// Package format подготавливает текст к набору с учётом выбранного языка.
package format

import "strings"

// Language представляет режим форматирования текста.
type Language string

const (
	LangText       Language = "text"
	LangPython     Language = "python"
	LangCPP        Language = "c++"
	LangJava       Language = "java"
	LangJavaScript Language = "javascript"
	LangCSharp     Language = "c#"
)

// AvailableLanguages возвращает список поддерживаемых режимов.
func AvailableLanguages() []Language {
	return []Language{LangText, LangPython, LangCPP, LangJava, LangJavaScript, LangCSharp}
}

// Apply форматирует текст перед набором.
// Для кода убираются хвостовые пробелы в строках, отступы сохраняются -
// иначе автоотступ редактора ломает структуру. Для обычного текста
// убираются только завершающие переводы строк.
func Apply(text string, lang Language) string {
	switch lang {
	case LangPython, LangCPP, LangJava, LangJavaScript, LangCSharp:
		return stripTrailing(text)
	default:
		return strings.TrimRight(text, "\n")
	}
}

func stripTrailing(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
