package proxy

import "slices"

// LabeledAction is the capability rules evaluate. Actions routed through a
// Router must implement it.
type LabeledAction interface {
	Label() string
}

// Rule decides whether a route accepts an action.
// Implementations must be deterministic and free of side effects.
type Rule interface {
	Matches(a LabeledAction) bool
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(a LabeledAction) bool

// Matches calls f(a).
func (f RuleFunc) Matches(a LabeledAction) bool {
	return f(a)
}

// Label matches actions whose label equals one of labels.
//
// Example:
//
//	builder.Add(githubHandler, proxy.Label("github"))
func Label(labels ...string) Rule {
	set := slices.Clone(labels)
	return RuleFunc(func(a LabeledAction) bool {
		return slices.Contains(set, a.Label())
	})
}

// MatchAll matches every action. Useful as the last, catch-all route.
func MatchAll() Rule {
	return RuleFunc(func(LabeledAction) bool { return true })
}

// Not inverts a rule.
func Not(r Rule) Rule {
	return RuleFunc(func(a LabeledAction) bool {
		return !r.Matches(a)
	})
}
