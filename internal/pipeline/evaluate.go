package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned when the scenario is empty after trimming.
var ErrInvalidInput = errors.New("invalid input")

// Evaluate scores a scenario and its planned response against all five
// frameworks and builds the full report. The response may be empty.
func Evaluate(scenario, response string) (Report, error) {
	if strings.TrimSpace(scenario) == "" {
		return Report{}, fmt.Errorf("%w: scenario is required", ErrInvalidInput)
	}

	text := Normalize(scenario, response)

	results := make([]FrameworkResult, len(frameworks))
	for i, f := range frameworks {
		results[i] = f.Evaluate(text)
	}

	overall := OverallScore(results)
	recs := Prioritize(Signals{Text: text, Frameworks: results, Overall: overall})

	return Report{
		Frameworks:         results,
		OverallScore:       overall,
		RiskLevel:          RiskFor(overall),
		Interpretation:     Interpret(overall),
		KeyRecommendations: recs,
	}, nil
}

// EvaluateInput is Evaluate for an Input value.
func EvaluateInput(in Input) (Report, error) {
	return Evaluate(in.Scenario, in.Response)
}

// Evaluate scores one framework against normalized text.
func (f Framework) Evaluate(text string) FrameworkResult {
	return FrameworkResult{
		Name:            f.Name,
		Score:           f.Score(text),
		Concerns:        f.ConcernsFor(text),
		Recommendations: append([]string(nil), f.Recommendations...),
	}
}

// ConcernsFor lists the concerns whose keyword occurs in text, in table
// order, or the single fallback concern when none do.
func (f Framework) ConcernsFor(text string) []string {
	var concerns []string
	for _, c := range f.Concerns {
		if strings.Contains(text, c.Keyword) {
			concerns = append(concerns, c.Text)
		}
	}
	if len(concerns) == 0 {
		return []string{f.FallbackConcern}
	}
	return concerns
}
