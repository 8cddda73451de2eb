package rules

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/reoring/conform"
	"github.com/reoring/conform/i18n"
)

// HasLengthBetween accepts strings (counted in runes), slices, arrays and maps
// whose length is at least min and strictly less than max.
func HasLengthBetween(min, max int, msg ...conform.MessageBuilder) conform.Validator[any] {
	def := catalog(i18n.CodeLength, map[string]string{"min": strconv.Itoa(min), "max": strconv.Itoa(max)})
	return conform.Func[any](func(v any) bool {
		n, ok := lengthOf(v)
		return ok && n >= min && n < max
	}, pick(msg, def))
}

func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// Each validates every element of a slice or array with sub, reporting at
// "<path>.<index>". All elements are visited; a value that is not a list fails
// at the call path. A nil sub only requires a list.
func Each(sub conform.Checker, msg ...conform.MessageBuilder) conform.Validator[any] {
	if sub == nil {
		sub = conform.For[any]()
	}
	notList := pick(msg, catalog(i18n.CodeNotList, nil))
	return conform.For[any]().WithValidator(eachChecker{sub: sub, notList: notList})
}

type eachChecker struct {
	sub     conform.Checker
	notList conform.MessageBuilder
}

func (e eachChecker) Validate(value any, errs *conform.Errors, path string) bool {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		errs.Add(path, e.notList(value))
		return false
	}
	ok := true
	for i := 0; i < rv.Len(); i++ {
		if !e.sub.Validate(rv.Index(i).Interface(), errs, conform.JoinPath(path, strconv.Itoa(i))) {
			ok = false
		}
	}
	return ok
}

// Not negates check.
func Not(check conform.Check) conform.Check {
	return func(v any) bool { return !check(v) }
}
