package conform

import (
	"strconv"

	"github.com/reoring/conform/i18n"
)

// WithRule adds a rule over the whole subject. The rule sees the same path as
// the receiver; both always run, so one call reports every failing rule.
func (v Validator[T]) WithRule(check Check, msg MessageBuilder) Validator[T] {
	return v.with(ruleEval(check, msg))
}

// WithValidator installs other as an additional whole-subject rule.
func (v Validator[T]) WithValidator(other Checker) Validator[T] {
	if other == nil {
		return v
	}
	return v.with(other.Validate)
}

// WithRuleFor adds a rule for field key of an object-shaped subject. The check
// runs against the field value and reports at path "<path>.<key>". A subject
// that is not an object, or has no such field, fails the rule.
func (v Validator[T]) WithRuleFor(key string, check Check, msg MessageBuilder) Validator[T] {
	return v.withField(key, ruleEval(check, msg))
}

// WithValidatorFor installs sub as the validator for field key. Errors raised
// by sub arrive prefixed with key, to any nesting depth.
func (v Validator[T]) WithValidatorFor(key string, sub Checker) Validator[T] {
	if sub == nil {
		return v.withField(key, identity)
	}
	return v.withField(key, sub.Validate)
}

// Optional returns a validator that accepts nil and otherwise defers to v.
func (v Validator[T]) Optional() Validator[T] { return Optional(v) }

// with composes rule in front of the receiver. No short-circuit: the base runs
// even when rule already failed.
func (v Validator[T]) with(rule evalFunc) Validator[T] {
	base := v.run()
	return Validator[T]{eval: func(value any, errs *Errors, path string) bool {
		ok := rule(value, errs, path)
		return base(value, errs, path) && ok
	}}
}

func (v Validator[T]) withField(key string, rule evalFunc) Validator[T] {
	return v.with(func(value any, errs *Errors, path string) bool {
		child := JoinPath(path, key)
		fv, found, isObject := lookupField(value, key)
		if !isObject {
			if errs != nil {
				errs.Add(child, i18n.T(i18n.CodeNotObject, map[string]string{"key": strconv.Quote(key)}))
			}
			return false
		}
		if !found {
			if errs != nil {
				errs.Add(child, i18n.T(i18n.CodeMissingField, map[string]string{"key": strconv.Quote(key)}))
			}
			return false
		}
		return rule(fv, errs, child)
	})
}
