package conform

import "reflect"

// Optional wraps base so that the absent sentinel (see IsAbsent) conforms
// without a report; any other value goes to base with the same sink and path.
func Optional[T any](base Validator[T]) Validator[T] {
	next := base.run()
	return Validator[T]{eval: func(value any, errs *Errors, path string) bool {
		if IsAbsent(value) {
			return true
		}
		return next(value, errs, path)
	}}
}

// IsAbsent reports whether value is nil: the untyped nil, or a typed nil
// pointer, map, slice, interface, channel or func.
func IsAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
