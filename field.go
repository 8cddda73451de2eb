package conform

import "reflect"

// lookupField reads field key of an object-shaped value. isObject is false for
// values that cannot carry named fields; found is false when the object has no
// such key. The value is only read once existence is established.
func lookupField(value any, key string) (fv any, found, isObject bool) {
	if m, ok := value.(map[string]any); ok {
		fv, found = m[key]
		return fv, found, true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !mv.IsValid() {
			return nil, false, true
		}
		return mv.Interface(), true, true
	case reflect.Struct:
		fv, found := lookupStructField(rv, key, 0)
		return fv, found, true
	default:
		return nil, false, false
	}
}

// lookupStructField resolves key among the visible fields of rv. Untagged
// embedded structs are flattened the way encoding/json flattens them: fields
// declared on the outer struct win over promoted ones, and a nil embedded
// pointer contributes nothing.
func lookupStructField(rv reflect.Value, key string, depth int) (any, bool) {
	if depth > _maxPathDepth {
		return nil, false
	}
	rt := rv.Type()
	var embedded []int
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if isPromoted(sf) {
			embedded = append(embedded, i)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name := ResolveStructKey(sf); name != "-" && name == key {
			return rv.Field(i).Interface(), true
		}
	}
	for _, i := range embedded {
		ev := rv.Field(i)
		if ev.Kind() == reflect.Pointer {
			if ev.IsNil() {
				continue
			}
			ev = ev.Elem()
		}
		if fv, ok := lookupStructField(ev, key, depth+1); ok {
			return fv, true
		}
	}
	return nil, false
}
