// Package rules holds the primitive validators that plug into the conform
// core: one factory per concrete type, each with a default catalog message
// that a custom conform.MessageBuilder can replace.
package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/reoring/conform"
	"github.com/reoring/conform/i18n"
)

// IsString accepts Go strings.
func IsString(msg ...conform.MessageBuilder) conform.Validator[string] {
	return conform.Func[string](func(v any) bool {
		_, ok := v.(string)
		return ok
	}, pick(msg, catalog(i18n.CodeNotString, nil)))
}

// IsNumber accepts every Go integer and float kind as well as json.Number.
// NaN is not a number.
func IsNumber(msg ...conform.MessageBuilder) conform.Validator[float64] {
	return conform.Func[float64](isNumber, pick(msg, catalog(i18n.CodeNotNumber, nil)))
}

func isNumber(v any) bool {
	f, ok := Number(v)
	return ok && !math.IsNaN(f)
}

// Number converts any Go integer or float kind, or a json.Number, to float64.
// It lets checks treat JSON input (json.Number) and YAML or Go input
// (int, float64) alike.
func Number(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// IsBoolean accepts Go bools.
func IsBoolean(msg ...conform.MessageBuilder) conform.Validator[bool] {
	return conform.Func[bool](func(v any) bool {
		_, ok := v.(bool)
		return ok
	}, pick(msg, catalog(i18n.CodeNotBoolean, nil)))
}

// IsFunction accepts non-nil func values of any signature.
func IsFunction(msg ...conform.MessageBuilder) conform.Validator[any] {
	return conform.Func[any](func(v any) bool {
		rv := reflect.ValueOf(v)
		return rv.Kind() == reflect.Func && !rv.IsNil()
	}, pick(msg, catalog(i18n.CodeNotFunction, nil)))
}

// IsOneOf accepts values of type V equal to one of values.
func IsOneOf[V comparable](values []V, msg ...conform.MessageBuilder) conform.Validator[V] {
	set := make(map[V]struct{}, len(values))
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		set[v] = struct{}{}
		quoted = append(quoted, fmt.Sprintf("%#v", v))
	}
	def := catalog(i18n.CodeNotOneOf, map[string]string{"values": "[" + strings.Join(quoted, ", ") + "]"})
	return conform.Func[V](func(v any) bool {
		t, ok := v.(V)
		if !ok {
			return false
		}
		_, ok = set[t]
		return ok
	}, pick(msg, def))
}

// IsEqual accepts values deeply equal to want.
func IsEqual[V any](want V, msg ...conform.MessageBuilder) conform.Validator[V] {
	def := catalog(i18n.CodeNotEqual, map[string]string{"want": fmt.Sprintf("%#v", want)})
	return conform.Func[V](func(v any) bool {
		return reflect.DeepEqual(v, want)
	}, pick(msg, def))
}

// MatchesRegex accepts strings matched by re.
func MatchesRegex(re *regexp.Regexp, msg ...conform.MessageBuilder) conform.Validator[string] {
	def := catalog(i18n.CodePattern, map[string]string{"pattern": re.String()})
	return conform.Func[string](func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}, pick(msg, def))
}

// pick returns the first non-nil custom builder, or def.
func pick(custom []conform.MessageBuilder, def conform.MessageBuilder) conform.MessageBuilder {
	for _, m := range custom {
		if m != nil {
			return m
		}
	}
	return def
}

// catalog defers the lookup to call time so language switches apply to
// validators built earlier.
func catalog(code string, data map[string]string) conform.MessageBuilder {
	return func(any) string { return i18n.T(code, data) }
}
