package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Message codes used by the validator core and the primitive rules.
const (
	CodeInvalidValue = "invalid_value"
	CodeNotObject    = "not_object"
	CodeMissingField = "missing_field"
	CodeNotString    = "not_string"
	CodeNotNumber    = "not_number"
	CodeNotBoolean   = "not_boolean"
	CodeNotFunction  = "not_function"
	CodeNotOneOf     = "not_one_of"
	CodeNotEqual     = "not_equal"
	CodeLength       = "length_out_of_range"
	CodePattern      = "pattern_mismatch"
	CodeNotList      = "not_list"
	CodeDuplicateKey = "duplicate_key"
)

// Translator retrieves localized messages for message codes.
// data provides optional values to embed in the message (for example "key",
// "min" or "max"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		CodeInvalidValue: "invalid value",
		CodeNotObject:    "expected an object with field {key}",
		CodeMissingField: "missing field {key}",
		CodeNotString:    "expected a string",
		CodeNotNumber:    "expected a number",
		CodeNotBoolean:   "expected a boolean",
		CodeNotFunction:  "expected a function",
		CodeNotOneOf:     "expected one of {values}",
		CodeNotEqual:     "expected {want}",
		CodeLength:       "length must be at least {min} and less than {max}",
		CodePattern:      "must match {pattern}",
		CodeNotList:      "expected a list",
		CodeDuplicateKey: "duplicate key {key}",
	},
	"ja": {
		CodeInvalidValue: "値が不正です",
		CodeNotObject:    "フィールド {key} を持つオブジェクトが必要です",
		CodeMissingField: "フィールド {key} がありません",
		CodeNotString:    "文字列が必要です",
		CodeNotNumber:    "数値が必要です",
		CodeNotBoolean:   "真偽値が必要です",
		CodeNotFunction:  "関数が必要です",
		CodeNotOneOf:     "{values} のいずれかが必要です",
		CodeNotEqual:     "{want} が必要です",
		CodeLength:       "長さは {min} 以上 {max} 未満である必要があります",
		CodePattern:      "{pattern} に一致する必要があります",
		CodeNotList:      "リストが必要です",
		CodeDuplicateKey: "キー {key} が重複しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		return code
	}
	return fill(msg, data)
}

// fill substitutes {name} placeholders with values from data.
func fill(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// SetLanguage switches the built-in Translator language. lang is a BCP 47 tag
// or an Accept-Language style list ("ja-JP", "fr, ja;q=0.8"); anything that
// matches neither English nor Japanese falls back to English.
func SetLanguage(lang string) {
	SetTranslator(dictTranslator{lang: Match(lang)})
}

// Match returns the built-in dictionary ("en" or "ja") best matching lang.
func Match(lang string) string {
	tag, _ := language.MatchStrings(matcher, lang)
	if base, _ := tag.Base(); base.String() == "ja" {
		return "ja"
	}
	return "en"
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
