package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCodeStripsTrailingWhitespace(t *testing.T) {
	in := "def main():  \n\tprint('hi')\t\n"
	want := "def main():\n\tprint('hi')\n"
	assert.Equal(t, want, Apply(in, LangPython))
}

func TestApplyCodeKeepsIndentation(t *testing.T) {
	in := "if (x) {\n    return;   \n}"
	want := "if (x) {\n    return;\n}"
	assert.Equal(t, want, Apply(in, LangCPP))
}

func TestApplyCodeKeepsBlankLines(t *testing.T) {
	// Пустые строки между блоками кода сохраняются как есть
	in := "def a():\n    pass\n\ndef b():\n    pass"
	assert.Equal(t, in, Apply(in, LangPython))
}

func TestApplyTextTrimsTrailingNewlines(t *testing.T) {
	assert.Equal(t, "hello world", Apply("hello world\n\n\n", LangText))
	// Пробелы внутри строк текст не трогает
	assert.Equal(t, "a  \nb", Apply("a  \nb\n", LangText))
}

func TestApplyUnknownLanguageActsAsText(t *testing.T) {
	assert.Equal(t, "x", Apply("x\n", Language("brainfuck")))
}

func TestAvailableLanguages(t *testing.T) {
	langs := AvailableLanguages()
	assert.Equal(t, LangText, langs[0])
	assert.Contains(t, langs, LangPython)
	assert.Contains(t, langs, LangCSharp)
}
