package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	assert.Equal(t, "expected a string", T(CodeNotString, nil))

	SetLanguage("ja")
	assert.Equal(t, "文字列が必要です", T(CodeNotString, nil))

	SetLanguage("fr") // unsupported languages fall back to English
	assert.Equal(t, "expected a string", T(CodeNotString, nil))
}

func TestTranslator_Placeholders(t *testing.T) {
	msg := T(CodeLength, map[string]string{"min": "2", "max": "5"})
	assert.Equal(t, "length must be at least 2 and less than 5", msg)

	assert.Equal(t, `missing field "name"`, T(CodeMissingField, map[string]string{"key": `"name"`}))
}

func TestTranslator_UnknownCodeEchoesCode(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

func TestSetTranslator_CustomAndReset(t *testing.T) {
	t.Cleanup(func() { SetTranslator(nil) })

	SetTranslator(upperTranslator{})
	assert.Equal(t, "X:not_number", T(CodeNotNumber, nil))

	SetTranslator(nil)
	assert.Equal(t, "expected a number", T(CodeNotNumber, nil))
}

func TestMatch(t *testing.T) {
	for in, want := range map[string]string{
		"":                  "en",
		"ja":                "ja",
		"ja-JP":             "ja",
		"en-GB":             "en",
		"fr":                "en",
		"fr, ja;q=0.8":      "ja",
		"not a language!!!": "en",
	} {
		assert.Equal(t, want, Match(in), in)
	}
}
