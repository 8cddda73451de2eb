package conform

import (
	"reflect"
	"strings"
)

// ResolveStructKey returns the key under which a struct field is visible to
// field rules. Priority: conform:"name" > json tag name > field name; "-"
// hides the field.
func ResolveStructKey(sf reflect.StructField) string {
	if ct := sf.Tag.Get("conform"); ct != "" {
		if i := strings.IndexByte(ct, ','); i >= 0 {
			ct = ct[:i]
		}
		if ct = strings.TrimSpace(ct); ct != "" {
			return ct
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

// isPromoted reports whether sf is an embedded struct whose fields are visible
// on the outer struct instead of under a key of its own: an anonymous struct
// or pointer-to-struct field without a tag name. Embedded pointers to
// unexported struct types are skipped, as encoding/json does.
func isPromoted(sf reflect.StructField) bool {
	if !sf.Anonymous || tagName(sf) != "" {
		return false
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		if !sf.IsExported() {
			return false
		}
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func tagName(sf reflect.StructField) string {
	for _, tag := range []string{"conform", "json"} {
		name := sf.Tag.Get(tag)
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}
