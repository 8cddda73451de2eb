package conform

import (
	"github.com/reoring/conform/i18n"
)

// Check is a predicate over a subject of unknown shape.
type Check func(value any) bool

// MessageBuilder renders the error message for a value that failed a Check.
type MessageBuilder func(value any) string

// Rule pairs a Check with the MessageBuilder used when it fails.
type Rule struct {
	Check   Check
	Message MessageBuilder
}

// Checker is anything that can judge a value and report into a collector.
// Every Validator[T] is a Checker, which is how validators of different
// target types are installed into one another.
type Checker interface {
	Validate(value any, errs *Errors, path string) bool
}

type evalFunc func(value any, errs *Errors, path string) bool

// Validator judges whether a value conforms to T.
//
// A Validator is an immutable value: every With* method returns a new
// Validator that closes over the receiver, leaving the receiver untouched, so
// one validator may serve as the shared base of any number of derived ones.
// The zero Validator behaves like For[T]().
type Validator[T any] struct {
	eval evalFunc
}

var _ Checker = Validator[any]{}

// For returns a validator for T built from the given rules. With no rules it is
// the identity validator: every value conforms and nothing is reported.
func For[T any](rules ...Rule) Validator[T] {
	v := Validator[T]{eval: identity}
	for _, r := range rules {
		v = v.WithRule(r.Check, r.Message)
	}
	return v
}

// Func returns a single-rule validator. When check fails and a collector is
// present, one entry is appended at the call path with msg(value) as message;
// a nil msg falls back to the catalog message for invalid values.
func Func[T any](check Check, msg MessageBuilder) Validator[T] {
	return Validator[T]{eval: ruleEval(check, msg)}
}

// Validator builds a single-rule validator from r.
func (r Rule) Validator() Validator[any] { return Func[any](r.Check, r.Message) }

func identity(any, *Errors, string) bool { return true }

func ruleEval(check Check, msg MessageBuilder) evalFunc {
	if check == nil {
		return identity
	}
	return func(value any, errs *Errors, path string) bool {
		if check(value) {
			return true
		}
		if errs != nil {
			errs.Add(path, message(msg, value))
		}
		return false
	}
}

func message(msg MessageBuilder, value any) string {
	if msg == nil {
		return i18n.T(i18n.CodeInvalidValue, nil)
	}
	return msg(value)
}

func (v Validator[T]) run() evalFunc {
	if v.eval == nil {
		return identity
	}
	return v.eval
}

// Validate judges value at path, appending every nonconformance to errs.
// errs may be nil, in which case Validate is a pure predicate.
func (v Validator[T]) Validate(value any, errs *Errors, path string) bool {
	return v.run()(value, errs, path)
}

// Is reports whether value conforms, without collecting anything.
func (v Validator[T]) Is(value any) bool { return v.run()(value, nil, "") }

// Test is Is plus narrowing: it returns value as a T when value conforms and
// is dynamically a T.
func (v Validator[T]) Test(value any) (T, bool) {
	if !v.Is(value) {
		var zero T
		return zero, false
	}
	t, ok := value.(T)
	return t, ok
}

// Check validates value from the root and returns the collected Errors as an
// error, or nil when value conforms.
func (v Validator[T]) Check(value any) error {
	var errs Errors
	if v.run()(value, &errs, "") {
		return nil
	}
	if len(errs) == 0 {
		// a custom Checker may fail without reporting
		errs.Add("", i18n.T(i18n.CodeInvalidValue, nil))
	}
	return errs
}
