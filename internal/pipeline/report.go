package pipeline

import "strings"

// RiskLevel is the coarse classification derived from the overall score.
type RiskLevel string

const (
	RiskLow        RiskLevel = "low"
	RiskMedium     RiskLevel = "medium"
	RiskConcerning RiskLevel = "concerning"
	RiskHigh       RiskLevel = "high"
)

// Interpretation is the human label for an overall score.
type Interpretation string

const (
	ExtremelyEthical    Interpretation = "Extremely Ethical"
	MostlyEthical       Interpretation = "Mostly Ethical"
	EthicallyConcerning Interpretation = "Ethically Concerning"
	NotEthical          Interpretation = "Not Ethical at All"
)

// Icon returns the display glyph shown next to the label.
func (i Interpretation) Icon() string {
	switch i {
	case ExtremelyEthical:
		return "✅"
	case MostlyEthical:
		return "👍"
	case EthicallyConcerning:
		return "⚠️"
	default:
		return "❌"
	}
}

// Breakpoints shared by the risk level and interpretation mappings.
const (
	excellentThreshold  = 4.5
	goodThreshold       = 3.5
	concerningThreshold = 2.0
)

// Input is the text pair being evaluated.
type Input struct {
	Scenario string `json:"scenario" yaml:"scenario"`
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
}

// FrameworkResult is the outcome of scoring one framework.
type FrameworkResult struct {
	Name            FrameworkName `json:"name" yaml:"name"`
	Score           int           `json:"score" yaml:"score"`
	Concerns        []string      `json:"concerns" yaml:"concerns"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
}

// Report is the full evaluation of one Input.
type Report struct {
	Frameworks         []FrameworkResult `json:"frameworks" yaml:"frameworks"`
	OverallScore       float64           `json:"overallScore" yaml:"overallScore"`
	RiskLevel          RiskLevel         `json:"riskLevel" yaml:"riskLevel"`
	Interpretation     Interpretation    `json:"interpretation" yaml:"interpretation"`
	KeyRecommendations []string          `json:"keyRecommendations" yaml:"keyRecommendations"`
}

// Clone returns a deep copy so cached reports cannot be mutated by callers.
func (r Report) Clone() Report {
	out := r
	out.Frameworks = make([]FrameworkResult, len(r.Frameworks))
	for i, f := range r.Frameworks {
		f.Concerns = append([]string(nil), f.Concerns...)
		f.Recommendations = append([]string(nil), f.Recommendations...)
		out.Frameworks[i] = f
	}
	out.KeyRecommendations = append([]string(nil), r.KeyRecommendations...)
	return out
}

// Framework returns the result for name, or false if the report lacks it.
func (r Report) Framework(name FrameworkName) (FrameworkResult, bool) {
	for _, f := range r.Frameworks {
		if f.Name == name {
			return f, true
		}
	}
	return FrameworkResult{}, false
}

// Normalize folds the scenario and response into the single lowercase
// text that every rule matches against. Only case changes.
func Normalize(scenario, response string) string {
	return strings.ToLower(scenario + " " + response)
}

// OverallScore is the unweighted mean of the framework scores.
func OverallScore(results []FrameworkResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return float64(sum) / float64(len(results))
}

// RiskFor maps an overall score to a risk level.
func RiskFor(overall float64) RiskLevel {
	switch {
	case overall >= excellentThreshold:
		return RiskLow
	case overall >= goodThreshold:
		return RiskMedium
	case overall >= concerningThreshold:
		return RiskConcerning
	default:
		return RiskHigh
	}
}

// Interpret maps an overall score to its label using the same
// breakpoints as RiskFor.
func Interpret(overall float64) Interpretation {
	switch {
	case overall >= excellentThreshold:
		return ExtremelyEthical
	case overall >= goodThreshold:
		return MostlyEthical
	case overall >= concerningThreshold:
		return EthicallyConcerning
	default:
		return NotEthical
	}
}

// Band is the display class of a single framework score.
type Band string

const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// BandFor classifies a framework score for display.
func BandFor(score int) Band {
	switch {
	case score >= 4:
		return BandStrong
	case float64(score) >= 2.5:
		return BandModerate
	default:
		return BandWeak
	}
}
