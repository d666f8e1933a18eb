package pipeline

import "strings"

// Predicate reports whether a normalized text satisfies a condition.
// Every predicate is a total substring test, so evaluation cannot fail.
type Predicate func(text string) bool

// Rule is one line of a framework's scoring table. A rule contributes its
// Delta once when Match is true, no matter how many of its phrases occur.
type Rule struct {
	Label string    `json:"label"` // human-readable form of the condition
	Delta int       `json:"delta"`
	Match Predicate `json:"-"`
}

// Any matches when at least one of the phrases occurs in the text.
func Any(phrases ...string) Predicate {
	return func(text string) bool {
		return containsAny(text, phrases...)
	}
}

// All matches when every phrase occurs in the text.
func All(phrases ...string) Predicate {
	return func(text string) bool {
		for _, p := range phrases {
			if !strings.Contains(text, p) {
				return false
			}
		}
		return true
	}
}

// And combines predicates; all of them must match.
func And(preds ...Predicate) Predicate {
	return func(text string) bool {
		for _, p := range preds {
			if !p(text) {
				return false
			}
		}
		return true
	}
}

// Or combines predicates; one of them must match.
func Or(preds ...Predicate) Predicate {
	return func(text string) bool {
		for _, p := range preds {
			if p(text) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(text string) bool { return !p(text) }
}

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
