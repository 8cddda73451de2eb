// Package middleware judges HTTP request bodies with a conform validator
// before they reach a handler. Framework adapters live in the echo and gin
// submodules; Validate is the plain net/http form and also plugs into chi.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/conform"
	"github.com/reoring/conform/i18n"
	"github.com/reoring/conform/source"
)

// DefaultMaxBodyBytes caps the request body read by Judge.
const DefaultMaxBodyBytes = 1 << 20

// Options tunes request judging.
type Options struct {
	// AllowDuplicateKeys skips the repeated-key scan. Repeated keys are
	// reported by default.
	AllowDuplicateKeys bool
	// MaxBodyBytes caps the body size; 0 means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// ErrBodyTooLarge is returned when the body exceeds Options.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("middleware: request body too large")

type ctxKeyDocument struct{}

// storedDocument boxes the document so a JSON null body is still found.
type storedDocument struct{ value any }

// ContextWithDocument attaches the judged request document to ctx.
func ContextWithDocument(ctx context.Context, doc any) context.Context {
	return context.WithValue(ctx, ctxKeyDocument{}, storedDocument{value: doc})
}

// DocumentFromContext returns the document stored by ContextWithDocument.
// ok is false only when nothing was stored; a stored null yields (nil, true).
func DocumentFromContext(ctx context.Context) (any, bool) {
	d, ok := ctx.Value(ctxKeyDocument{}).(storedDocument)
	return d.value, ok
}

// Judge reads a JSON body and validates it with v. A malformed or oversized
// body is an error; nonconformance comes back as Errors with a nil error.
func Judge(body io.Reader, v conform.Checker, opt Options) (any, conform.Errors, error) {
	limit := opt.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, nil, fmt.Errorf("middleware: read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, nil, ErrBodyTooLarge
	}

	doc, err := source.JSON(data)
	if err != nil {
		return nil, nil, err
	}
	var errs conform.Errors
	if !opt.AllowDuplicateKeys {
		if errs, err = source.DuplicateKeys(data); err != nil {
			return nil, nil, err
		}
	}
	if !v.Validate(doc, &errs, "") && len(errs) == 0 {
		errs = append(errs, conform.ValidationError{Message: i18n.T(i18n.CodeInvalidValue, nil)})
	}
	return doc, errs, nil
}

// ErrorPayload shapes Errors for JSON responses.
func ErrorPayload(errs conform.Errors) map[string]any {
	return map[string]any{"errors": errs}
}

// Validate returns net/http middleware that rejects nonconforming JSON bodies
// with 400 and the ErrorPayload, and otherwise stores the document in the
// request context.
func Validate(v conform.Checker, opt Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			doc, errs, err := Judge(r.Body, v, opt)
			switch {
			case err != nil:
				writeJSON(w, StatusFor(err), map[string]any{"error": err.Error()})
				return
			case len(errs) > 0:
				writeJSON(w, http.StatusBadRequest, ErrorPayload(errs))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDocument(r.Context(), doc)))
		})
	}
}

// StatusFor maps a Judge error to an HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(body)
}
