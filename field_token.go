package conform

import (
	"reflect"
	"strings"
)

// KeyOf returns the field key for a top-level field of S selected by address,
// so field rules break at compile time when the field is renamed:
//
//	conform.KeyOf(func(s *Spaceship) *int { return &s.CrewCount }) // "crewCount"
//
// KeyOf panics when selector does not return the address of an exported,
// visible top-level field of S.
func KeyOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("conform.KeyOf: selector must not be nil")
	}
	var zero S
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		panic("conform.KeyOf: S must be a struct type")
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if rv.Field(i).Addr().Pointer() != fp {
			continue
		}
		// A zero-size field shares its address with the next one; keep looking
		// for a field of the selected type.
		if sf.Type != reflect.TypeFor[F]() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "" || name == "-" {
			panic("conform.KeyOf: selected field is hidden")
		}
		return name
	}
	panic("conform.KeyOf: selector must return the address of a top-level field")
}

// PathOf returns the dot-joined key path of a nested struct field of S, for
// use with Errors.Has and Errors.Get. Only non-pointer struct hops are followed.
//
//	conform.PathOf(func(s *Spaceship) *string { return &s.Hull.Material }) // "hull.material"
func PathOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("conform.PathOf: selector must not be nil")
	}
	var zero S
	target := reflect.ValueOf(selector(&zero)).Pointer()
	keys, ok := findPathKeys(reflect.ValueOf(&zero).Elem(), target, reflect.TypeFor[F](), 0)
	if !ok || len(keys) == 0 {
		panic("conform.PathOf: selector must address a nested struct field (non-pointer)")
	}
	return strings.Join(keys, ".")
}

const _maxPathDepth = 32

func findPathKeys(v reflect.Value, target uintptr, ft reflect.Type, depth int) ([]string, bool) {
	if depth > _maxPathDepth || v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "" || name == "-" {
			continue
		}
		fv := v.Field(i)
		if fv.Addr().Pointer() == target && sf.Type == ft {
			return []string{name}, true
		}
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathKeys(fv, target, ft, depth+1); ok {
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}
