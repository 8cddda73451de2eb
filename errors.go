package conform

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a single nonconformance found during a validation call.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // dot-joined field keys (for example: engines.type); "" is the root.
	Message string `json:"message"`
}

// Error renders the entry as "path: message", or just the message at the root.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Errors collects the ValidationError entries of one validation call.
//
// A *Errors is handed down through the whole validator graph and is only ever
// appended to. It is not synchronized: concurrent calls need their own collector.
type Errors []ValidationError

// Add appends one entry. A nil receiver is a no-op so callers may pass the sink
// through without checking it.
func (es *Errors) Add(path, msg string) {
	if es == nil {
		return
	}
	*es = append(*es, ValidationError{Path: path, Message: msg})
}

// Error summarizes the first few entries.
func (es Errors) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}
	const maxShown = 3
	b := &strings.Builder{}
	b.WriteString("validation failed: ")
	lim := min(len(es), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(es[i].Error())
	}
	if len(es) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(es))
	}
	return b.String()
}

// Empty reports whether nothing was collected.
func (es Errors) Empty() bool { return len(es) == 0 }

// Has reports whether at least one entry was recorded at path.
func (es Errors) Has(path string) bool {
	for _, e := range es {
		if e.Path == path {
			return true
		}
	}
	return false
}

// Get returns the messages recorded at path in collection order.
func (es Errors) Get(path string) []string {
	var msgs []string
	for _, e := range es {
		if e.Path == path {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Paths returns the distinct paths in first-seen order.
func (es Errors) Paths() []string {
	var paths []string
	seen := make(map[string]struct{}, len(es))
	for _, e := range es {
		if _, ok := seen[e.Path]; ok {
			continue
		}
		seen[e.Path] = struct{}{}
		paths = append(paths, e.Path)
	}
	return paths
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}
