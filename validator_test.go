package conform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/conform"
)

type Engine struct {
	Type string `json:"type"`
}

type Spaceship struct {
	Name      string `json:"name"`
	CrewCount int    `json:"crewCount"`
	Engines   Engine `json:"engines"`
	secret    string
}

func crewCount(v any) int {
	switch s := v.(type) {
	case Spaceship:
		return s.CrewCount
	case map[string]any:
		n, _ := s["crewCount"].(int)
		return n
	}
	return 0
}

func shipName(v any) string {
	switch s := v.(type) {
	case Spaceship:
		return s.Name
	case map[string]any:
		n, _ := s["name"].(string)
		return n
	}
	return ""
}

func needsCrew() conform.Validator[Spaceship] {
	return conform.For[Spaceship]().
		WithRule(func(v any) bool { return crewCount(v) > 0 }, func(any) string { return "Spaceships need a crew!" })
}

func spaceshipValidator() conform.Validator[Spaceship] {
	return needsCrew().
		WithRule(func(v any) bool { return shipName(v) != "" }, func(any) string { return "Spaceships need cool names!" })
}

func engineValidator() conform.Validator[Engine] {
	return conform.For[Engine]().
		WithRuleFor("type", func(v any) bool { return v != "Reactionless" }, func(v any) string {
			return "Reactionless drives are not allowed"
		})
}

func TestIdentity_AlwaysConforms(t *testing.T) {
	v := conform.For[Spaceship]()
	for _, in := range []any{nil, 127, "x", map[string]any{}, Spaceship{}, []int{1}} {
		var errs conform.Errors
		assert.True(t, v.Validate(in, &errs, "root"), "input %#v", in)
		assert.True(t, v.Is(in))
		assert.Empty(t, errs)
	}
}

func TestZeroValidator_BehavesLikeIdentity(t *testing.T) {
	var v conform.Validator[int]
	assert.True(t, v.Is("anything"))
	assert.True(t, v.WithRule(func(any) bool { return true }, nil).Is(1))
}

func TestNonObjectWithoutRules_Conforms(t *testing.T) {
	var errs conform.Errors
	assert.True(t, conform.For[Spaceship]().Validate(127, &errs, ""))
	assert.Empty(t, errs)
}

func TestWithRule_CollectsEverySiblingFailure(t *testing.T) {
	var errs conform.Errors
	ok := spaceshipValidator().Validate(map[string]any{"name": "", "crewCount": 0}, &errs, "")

	assert.False(t, ok)
	assert.ElementsMatch(t, conform.Errors{
		{Path: "", Message: "Spaceships need cool names!"},
		{Path: "", Message: "Spaceships need a crew!"},
	}, errs)
}

func TestWithRule_LastAddedRunsFirst(t *testing.T) {
	var errs conform.Errors
	spaceshipValidator().Validate(Spaceship{}, &errs, "")
	require.Len(t, errs, 2)
	assert.Equal(t, "Spaceships need cool names!", errs[0].Message)
	assert.Equal(t, "Spaceships need a crew!", errs[1].Message)
}

func TestWithRule_NoEntryForPassingRule(t *testing.T) {
	var errs conform.Errors
	ok := spaceshipValidator().Validate(Spaceship{Name: "Rocinante"}, &errs, "")
	assert.False(t, ok)
	assert.Equal(t, conform.Errors{{Message: "Spaceships need a crew!"}}, errs)

	errs = nil
	assert.True(t, spaceshipValidator().Validate(Spaceship{Name: "Rocinante", CrewCount: 4}, &errs, ""))
	assert.Empty(t, errs)
}

func TestConjunction_NRules(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  bool
		n     int
	}{
		{name: "all pass", value: 4, want: true, n: 0},
		{name: "one fails", value: 3, want: false, n: 1},
		{name: "all fail", value: -3, want: false, n: 3},
	}
	v := conform.For[int]().
		WithRule(func(v any) bool { return v.(int) > 0 }, func(any) string { return "positive" }).
		WithRule(func(v any) bool { return v.(int)%2 == 0 }, func(any) string { return "even" }).
		WithRule(func(v any) bool { return v.(int) > 2 || v.(int) < -10 }, func(any) string { return "big" })
	// -3 fails: positive, even(-3%2 == -1), big
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs conform.Errors
			assert.Equal(t, tt.want, v.Validate(tt.value, &errs, ""))
			assert.Len(t, errs, tt.n)
		})
	}
}

func TestWithRuleFor_ChecksFieldAtChildPath(t *testing.T) {
	v := conform.For[Spaceship]().
		WithRuleFor("name", func(v any) bool { return v != "" }, func(any) string { return "name required" })

	var errs conform.Errors
	assert.False(t, v.Validate(Spaceship{}, &errs, ""))
	assert.Equal(t, conform.Errors{{Path: "name", Message: "name required"}}, errs)

	errs = nil
	assert.False(t, v.Validate(map[string]any{"name": ""}, &errs, "ship"))
	assert.Equal(t, conform.Errors{{Path: "ship.name", Message: "name required"}}, errs)

	assert.True(t, v.Is(&Spaceship{Name: "Canterbury"}))
}

func TestWithRuleFor_MissingFieldAlwaysFails(t *testing.T) {
	called := false
	v := conform.For[Spaceship]().
		WithRuleFor("name", func(any) bool { called = true; return true }, func(any) string { return "unused" })

	var errs conform.Errors
	assert.False(t, v.Validate(map[string]any{"crewCount": 2}, &errs, ""))
	assert.False(t, called, "field check must not run for a missing field")
	assert.Equal(t, conform.Errors{{Path: "name", Message: `missing field "name"`}}, errs)
}

func TestWithRuleFor_NonObjectSubject(t *testing.T) {
	v := conform.For[Spaceship]().
		WithRuleFor("name", func(any) bool { return true }, nil)

	for _, in := range []any{127, "ship", nil, (*Spaceship)(nil), []any{}, map[int]any{1: "x"}} {
		var errs conform.Errors
		assert.False(t, v.Validate(in, &errs, ""), "input %#v", in)
		assert.Equal(t, conform.Errors{{Path: "name", Message: `expected an object with field "name"`}}, errs)
	}
}

func TestWithRuleFor_HiddenAndUnexportedFieldsAreMissing(t *testing.T) {
	v := conform.For[Spaceship]().WithRuleFor("secret", func(any) bool { return true }, nil)
	assert.False(t, v.Is(Spaceship{secret: "x"}))

	v = conform.For[Spaceship]().WithRuleFor("Name", func(any) bool { return true }, nil)
	assert.False(t, v.Is(Spaceship{}), "json tag renames the field")
}

func TestWithRuleFor_NamedStringKeyMap(t *testing.T) {
	type key string
	v := conform.For[map[key]int]().WithRuleFor("a", func(v any) bool { return v == 1 }, nil)
	assert.True(t, v.Is(map[key]int{"a": 1}))
	assert.False(t, v.Is(map[key]int{"b": 1}))
}

func TestWithRuleFor_BaseRunsAtOriginalPath(t *testing.T) {
	v := spaceshipValidator().
		WithRuleFor("name", func(v any) bool { return len(v.(string)) < 5 }, func(any) string { return "name too long" })

	var errs conform.Errors
	assert.False(t, v.Validate(Spaceship{Name: "Nauvoo"}, &errs, "fleet"))
	assert.ElementsMatch(t, conform.Errors{
		{Path: "fleet.name", Message: "name too long"},
		{Path: "fleet", Message: "Spaceships need a crew!"},
	}, errs)
}

func TestWithValidatorFor_NestedPaths(t *testing.T) {
	ship := conform.For[Spaceship]().WithValidatorFor("engines", engineValidator())

	var errs conform.Errors
	assert.False(t, ship.Validate(map[string]any{"engines": map[string]any{"type": "Reactionless"}}, &errs, ""))
	assert.Equal(t, conform.Errors{{Path: "engines.type", Message: "Reactionless drives are not allowed"}}, errs)

	errs = nil
	assert.False(t, ship.Validate(Spaceship{Engines: Engine{Type: "Reactionless"}}, &errs, "spaceship"))
	assert.Equal(t, conform.Errors{{Path: "spaceship.engines.type", Message: "Reactionless drives are not allowed"}}, errs)

	assert.True(t, ship.Is(Spaceship{Engines: Engine{Type: "Epstein"}}))
}

func TestWithValidatorFor_ArbitraryDepth(t *testing.T) {
	leaf := conform.For[any]().WithRuleFor("d", func(v any) bool { return v == "ok" }, func(any) string { return "bad d" })
	v := conform.For[any]().WithValidatorFor("a",
		conform.For[any]().WithValidatorFor("b",
			conform.For[any]().WithValidatorFor("c", leaf)))

	in := map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "no"}}}}
	var errs conform.Errors
	assert.False(t, v.Validate(in, &errs, "root"))
	assert.Equal(t, conform.Errors{{Path: "root.a.b.c.d", Message: "bad d"}}, errs)

	errs = nil
	assert.False(t, v.Validate(map[string]any{"a": map[string]any{"b": 3}}, &errs, ""))
	assert.Equal(t, conform.Errors{{Path: "a.b.c", Message: `expected an object with field "c"`}}, errs)
}

func TestWithValidatorFor_NilSubStillRequiresField(t *testing.T) {
	v := conform.For[any]().WithValidatorFor("x", nil)
	assert.True(t, v.Is(map[string]any{"x": 1}))
	assert.False(t, v.Is(map[string]any{}))
}

func TestWithValidator_MergesSharedBase(t *testing.T) {
	named := conform.For[Spaceship]().
		WithRuleFor("name", func(v any) bool { return v != "" }, func(any) string { return "name required" })
	v := needsCrew().WithValidator(named)

	var errs conform.Errors
	assert.False(t, v.Validate(Spaceship{}, &errs, "s"))
	assert.ElementsMatch(t, conform.Errors{
		{Path: "s.name", Message: "name required"},
		{Path: "s", Message: "Spaceships need a crew!"},
	}, errs)
	assert.True(t, needsCrew().WithValidator(nil).Is(Spaceship{CrewCount: 1}), "nil checker is ignored")
}

func TestNonMutation_SharedBase(t *testing.T) {
	base := needsCrew()
	probe := Spaceship{CrewCount: 2}
	require.True(t, base.Is(probe))

	strict := base.WithRule(func(v any) bool { return shipName(v) == "Tachi" }, func(any) string { return "must be Tachi" })
	other := base.WithRuleFor("name", func(v any) bool { return v != "" }, nil)

	assert.True(t, base.Is(probe), "base unchanged after deriving")
	assert.False(t, strict.Is(probe))
	assert.False(t, other.Is(probe))
	assert.True(t, strict.Is(Spaceship{Name: "Tachi", CrewCount: 1}))
	assert.False(t, other.Is(Spaceship{Name: "Tachi"}), "derived validators keep base rules")

	var errs conform.Errors
	base.Validate(Spaceship{}, &errs, "")
	assert.Equal(t, conform.Errors{{Message: "Spaceships need a crew!"}}, errs)
}

func TestOptional_Law(t *testing.T) {
	base := conform.For[Engine]().WithRuleFor("type", func(v any) bool { return v != "" }, func(any) string { return "type required" })
	opt := conform.Optional(base)

	var errs conform.Errors
	assert.True(t, opt.Validate(nil, &errs, "engines"))
	assert.True(t, opt.Validate((*Engine)(nil), &errs, "engines"))
	assert.Empty(t, errs)

	for _, in := range []any{Engine{}, Engine{Type: "x"}, &Engine{}, 12, map[string]any{}} {
		var got, want conform.Errors
		assert.Equal(t, base.Validate(in, &want, "p"), opt.Validate(in, &got, "p"), "input %#v", in)
		assert.Equal(t, want, got)
	}
}

func TestOptional_MethodChains(t *testing.T) {
	ship := conform.For[Spaceship]().
		WithValidatorFor("engines", engineValidator().Optional()).
		WithRule(func(v any) bool { return crewCount(v) > 0 }, func(any) string { return "crew" })

	assert.True(t, ship.Is(map[string]any{"engines": nil, "crewCount": 1}))
	assert.False(t, ship.Is(map[string]any{"crewCount": 1}), "a missing key is not absent")
	assert.False(t, ship.Is(map[string]any{"engines": map[string]any{"type": "Reactionless"}, "crewCount": 1}))
}

func TestIsAbsent(t *testing.T) {
	var m map[string]any
	var s []int
	var f func()
	assert.True(t, conform.IsAbsent(nil))
	assert.True(t, conform.IsAbsent(m))
	assert.True(t, conform.IsAbsent(s))
	assert.True(t, conform.IsAbsent(f))
	assert.False(t, conform.IsAbsent(0))
	assert.False(t, conform.IsAbsent(""))
	assert.False(t, conform.IsAbsent(map[string]any{}))
}

func TestFunc_DefaultMessageAndNilCheck(t *testing.T) {
	var errs conform.Errors
	assert.False(t, conform.Func[int](func(any) bool { return false }, nil).Validate(1, &errs, "n"))
	assert.Equal(t, conform.Errors{{Path: "n", Message: "invalid value"}}, errs)

	assert.True(t, conform.Func[int](nil, nil).Is(1))
}

func TestFor_CompilesRules(t *testing.T) {
	v := conform.For[int](
		conform.Rule{Check: func(v any) bool { return v.(int) > 0 }, Message: func(any) string { return "positive" }},
		conform.Rule{Check: func(v any) bool { return v.(int) < 10 }, Message: func(v any) string { return "small" }},
	)
	var errs conform.Errors
	assert.False(t, v.Validate(-1, &errs, ""))
	assert.Equal(t, []string{"positive"}, errs.Get(""))

	r := conform.Rule{Check: func(v any) bool { return v == "x" }}
	assert.True(t, r.Validator().Is("x"))
}

func TestPureCallLeavesNoTrace(t *testing.T) {
	assert.False(t, spaceshipValidator().Validate(Spaceship{}, nil, "p"))
}

func TestTest_Narrows(t *testing.T) {
	v := needsCrew()
	got, ok := v.Test(Spaceship{Name: "Pella", CrewCount: 3})
	assert.True(t, ok)
	assert.Equal(t, "Pella", got.Name)

	_, ok = v.Test(map[string]any{"crewCount": 3})
	assert.False(t, ok, "conforms but is not a Spaceship")

	_, ok = v.Test(Spaceship{})
	assert.False(t, ok)
}

func TestCheck_ReturnsErrors(t *testing.T) {
	assert.NoError(t, spaceshipValidator().Check(Spaceship{Name: "a", CrewCount: 1}))

	err := spaceshipValidator().Check(Spaceship{})
	require.Error(t, err)
	es, ok := conform.AsErrors(err)
	require.True(t, ok)
	assert.Len(t, es, 2)

	wrapped := errors.Join(errors.New("ctx"), err)
	es, ok = conform.AsErrors(wrapped)
	assert.True(t, ok)
	assert.Len(t, es, 2)
}

type silent struct{}

func (silent) Validate(any, *conform.Errors, string) bool { return false }

func TestCheck_SilentCheckerStillReports(t *testing.T) {
	err := conform.For[any]().WithValidator(silent{}).Check(1)
	es, ok := conform.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, conform.Errors{{Message: "invalid value"}}, es)
}

func TestPanickingCheckPropagates(t *testing.T) {
	v := conform.For[any]().
		WithRule(func(any) bool { panic("boom") }, nil).
		WithRule(func(any) bool { return false }, func(any) string { return "first" })

	var errs conform.Errors
	assert.PanicsWithValue(t, "boom", func() { v.Validate(1, &errs, "") })
	assert.Equal(t, conform.Errors{{Message: "first"}}, errs, "partial results are kept")
}
