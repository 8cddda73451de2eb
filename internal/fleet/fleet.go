// Package fleet is the built-in validator catalog served by cmd/conform: a
// small spaceship registry domain assembled from the conform core and rules.
package fleet

import (
	"regexp"
	"slices"

	"github.com/reoring/conform"
	"github.com/reoring/conform/rules"
)

// Engine is one drive of a ship.
type Engine struct {
	Type   string  `json:"type" yaml:"type"`
	Thrust float64 `json:"thrust" yaml:"thrust"`
}

// Captain commands a ship.
type Captain struct {
	Name string `json:"name" yaml:"name"`
	Rank string `json:"rank" yaml:"rank"`
}

// Spaceship is a registry entry.
type Spaceship struct {
	Name      string   `json:"name" yaml:"name"`
	CrewCount int      `json:"crewCount" yaml:"crewCount"`
	Registry  string   `json:"registry" yaml:"registry"`
	Engines   []Engine `json:"engines" yaml:"engines"`
	Captain   *Captain `json:"captain,omitempty" yaml:"captain,omitempty"`
}

// EngineTypes lists the drives the registry accepts.
var EngineTypes = []string{"Epstein", "Fusion", "Ion"}

var registryPattern = regexp.MustCompile(`^[A-Z]{3}-\d{3,5}$`)

func positive(v any) bool {
	f, ok := rules.Number(v)
	return ok && f > 0
}

// EngineValidator accepts an engine of a known type with positive thrust.
func EngineValidator() conform.Validator[Engine] {
	return conform.For[Engine]().
		WithValidatorFor(conform.KeyOf(func(e *Engine) *string { return &e.Type }),
			rules.IsOneOf(EngineTypes, func(v any) string {
				if v == "Reactionless" {
					return "Reactionless drives are not allowed"
				}
				return "unknown engine type"
			})).
		WithRuleFor(conform.KeyOf(func(e *Engine) *float64 { return &e.Thrust }), positive,
			func(any) string { return "thrust must be positive" })
}

// CaptainValidator accepts a named captain of a known rank.
func CaptainValidator() conform.Validator[Captain] {
	return conform.For[Captain]().
		WithValidatorFor("name", rules.HasLengthBetween(1, 65)).
		WithValidatorFor("rank", rules.IsOneOf([]string{"Captain", "Commander", "Admiral"}))
}

// CrewedShip is the rule every ship shares: it needs a crew. Other validators
// derive from it.
func CrewedShip() conform.Validator[Spaceship] {
	return conform.For[Spaceship]().
		WithRuleFor(conform.KeyOf(func(s *Spaceship) *int { return &s.CrewCount }), positive,
			func(any) string { return "Spaceships need a crew!" })
}

// SpaceshipValidator accepts a complete registry entry. The captain field may
// be null; every other field must be present.
func SpaceshipValidator() conform.Validator[Spaceship] {
	return CrewedShip().
		WithRuleFor("name", func(v any) bool {
			s, ok := v.(string)
			return ok && s != ""
		}, func(any) string { return "Spaceships need cool names!" }).
		WithValidatorFor("registry", rules.MatchesRegex(registryPattern)).
		WithValidatorFor("engines", rules.Each(EngineValidator())).
		WithValidatorFor("captain", CaptainValidator().Optional())
}

var catalog = map[string]func() conform.Checker{
	"spaceship": func() conform.Checker { return SpaceshipValidator() },
	"engine":    func() conform.Checker { return EngineValidator() },
	"captain":   func() conform.Checker { return CaptainValidator() },
}

// Kinds lists the catalog names in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(catalog))
	for k := range catalog {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Lookup returns the validator registered under kind.
func Lookup(kind string) (conform.Checker, bool) {
	mk, ok := catalog[kind]
	if !ok {
		return nil, false
	}
	return mk(), true
}
