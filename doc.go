// Package conform builds runtime validators by composition.
//
// - A Validator[T] checks an arbitrary value and collects every nonconformance as
//   a ValidationError with a dot-joined path and a message.
// - Validators are immutable: WithRule, WithRuleFor, WithValidatorFor and Optional
//   return new validators and never change the receiver or the value under test.
// - Rules never short-circuit. A failing rule still lets later rules run, so one
//   call reports all problems at once.
//
// Design policy:
// - The root package only holds the combinators and the error model.
// - Primitive rules live under rules/, input decoding under source/, messages under i18n/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	engine := conform.For[Engine]().
//	    WithValidatorFor("type", rules.IsOneOf([]string{"Ion", "Fusion"}))
//	ship := conform.For[Spaceship]().
//	    WithRuleFor("crewCount", positive, func(any) string { return "Spaceships need a crew!" }).
//	    WithValidatorFor("engines", rules.Each(engine)).
//	    WithValidatorFor("captain", captain.Optional())
//
//	var errs conform.Errors
//	if !ship.Validate(doc, &errs, "") {
//	    for _, e := range errs {
//	        fmt.Println(e.Path, e.Message)
//	    }
//	}
package conform
