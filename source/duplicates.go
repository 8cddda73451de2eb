package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/conform"
	"github.com/reoring/conform/i18n"
)

type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// DuplicateKeys scans a JSON document and reports every object key that
// appears more than once in the same object, at the path of the repeated key.
// Decoding into a map silently keeps the last value, so this is the only way
// to see the repeats. YAML needs no such pass: yaml.v3 already rejects
// duplicate mapping keys.
func DuplicateKeys(data []byte) (conform.Errors, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		errs  conform.Errors
		stack []frame
		seen  bool
	)
	// startValue marks the beginning of a value inside the current container.
	startValue := func() {
		if n := len(stack); n > 0 && !stack[n-1].object {
			stack[n-1].index++
		}
	}
	// endValue re-arms the enclosing object for its next key.
	endValue := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].expectingKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			// Token reports a cut-off document as a clean EOF.
			if !seen || len(stack) > 0 {
				return errs, fmt.Errorf("source: scan json: %w", io.ErrUnexpectedEOF)
			}
			break
		}
		if err != nil {
			return errs, fmt.Errorf("source: scan json: %w", err)
		}
		seen = true

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				startValue()
				stack = append(stack, frame{object: true, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				startValue()
				stack = append(stack, frame{index: -1})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				endValue()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					errs.Add(pathOf(stack[:n-1], v),
						i18n.T(i18n.CodeDuplicateKey, map[string]string{"key": strconv.Quote(v)}))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			startValue()
			endValue()
		default:
			startValue()
			endValue()
		}
	}
	return errs, nil
}

func pathOf(stack []frame, key string) string {
	segs := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		if f.object {
			segs = append(segs, f.key)
		} else {
			segs = append(segs, strconv.Itoa(f.index))
		}
	}
	segs = append(segs, key)
	return conform.JoinPath(segs...)
}

// IsJSON reports whether data would be decoded as JSON under f.
func IsJSON(data []byte, f Format) bool {
	switch f {
	case FormatJSON:
		return true
	case FormatAuto, "":
		trimmed := bytes.TrimSpace(data)
		return len(trimmed) > 0 && strings.ContainsRune("{[", rune(trimmed[0]))
	}
	return false
}
