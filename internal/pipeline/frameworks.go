// Package pipeline - ethical yardstick scoring.
//
// A use case and its planned implementation are normalized into one
// lowercase text, scored against five ethical frameworks using keyword
// rule tables, aggregated into an overall score and risk level, and run
// through an ordered cascade of triggers that produces the key
// recommendations. Everything in this package is pure: no I/O, no
// shared mutable state.
package pipeline

// FrameworkName identifies one of the five ethical frameworks.
type FrameworkName string

const (
	JusticeEquity     FrameworkName = "Justice & Equity"
	TransparencyTrust FrameworkName = "Transparency & Trust"
	Accountability    FrameworkName = "Accountability"
	RespectForPersons FrameworkName = "Respect for Persons"
	NonMaleficence    FrameworkName = "Non-Maleficence"
)

const (
	// BaseScore is where every framework starts before rule deltas.
	BaseScore = 3
	// MinScore and MaxScore bound a framework score after clamping.
	MinScore = 0
	MaxScore = 5
)

// ConcernTrigger emits Text when Keyword occurs in the normalized text.
type ConcernTrigger struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

// Framework is the data that drives scoring for one ethical dimension.
type Framework struct {
	Name            FrameworkName    `json:"name"`
	Rules           []Rule           `json:"rules"`
	Concerns        []ConcernTrigger `json:"concerns"`
	FallbackConcern string           `json:"fallback_concern"`
	Recommendations []string         `json:"recommendations"`
}

// Score applies every rule to text and clamps the sum to [MinScore, MaxScore].
func (f Framework) Score(text string) int {
	score := BaseScore
	for _, r := range f.Rules {
		if r.Match(text) {
			score += r.Delta
		}
	}
	return clamp(score)
}

func clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}

// Frameworks returns the five framework tables in report order.
// The returned slice is a fresh copy; callers may modify it freely.
func Frameworks() []Framework {
	out := make([]Framework, len(frameworks))
	for i, f := range frameworks {
		f.Rules = append([]Rule(nil), f.Rules...)
		f.Concerns = append([]ConcernTrigger(nil), f.Concerns...)
		f.Recommendations = append([]string(nil), f.Recommendations...)
		out[i] = f
	}
	return out
}

var frameworks = []Framework{
	{
		Name: JusticeEquity,
		Rules: []Rule{
			{Label: "fair | equitable | justice", Delta: 2, Match: Any("fair", "equitable", "justice")},
			{Label: "inclusive | accessible | equal", Delta: 1, Match: Any("inclusive", "accessible", "equal")},
			{Label: "diverse | representation", Delta: 1, Match: Any("diverse", "representation")},
			{Label: "bias | discrimination | unfair", Delta: -2, Match: Any("bias", "discrimination", "unfair")},
			{Label: "exclude | marginalize", Delta: -2, Match: Any("exclude", "marginalize")},
			{Label: "privilege AND NOT check", Delta: -1, Match: And(Any("privilege"), Not(Any("check")))},
		},
		Concerns: []ConcernTrigger{
			{Keyword: "bias", Text: "Potential for algorithmic bias and unfair outcomes"},
			{Keyword: "discrimination", Text: "Risk of discriminatory practices"},
		},
		FallbackConcern: "Consider fairness across all user groups",
		Recommendations: []string{
			"Implement bias testing and fairness metrics",
			"Ensure diverse representation in data and testing",
		},
	},
	{
		Name: TransparencyTrust,
		Rules: []Rule{
			{Label: "transparent | open | clear", Delta: 2, Match: Any("transparent", "open", "clear")},
			{Label: "explainable | interpretable", Delta: 2, Match: Any("explainable", "interpretable")},
			{Label: "documented | disclosed", Delta: 1, Match: Any("documented", "disclosed")},
			{Label: "black box | opaque | hidden", Delta: -2, Match: Any("black box", "opaque", "hidden")},
			{Label: "(secret | proprietary) AND NOT open", Delta: -2, Match: And(Any("secret", "proprietary"), Not(Any("open")))},
			{Label: "misleading | deceptive", Delta: -2, Match: Any("misleading", "deceptive")},
		},
		Concerns: []ConcernTrigger{
			{Keyword: "black box", Text: "Lack of explainability in decision-making"},
			{Keyword: "hidden", Text: "Insufficient transparency in operations"},
		},
		FallbackConcern: "Ensure adequate transparency and explainability",
		Recommendations: []string{
			"Provide clear explanations of system behavior",
			"Document decision-making processes",
		},
	},
	{
		Name: Accountability,
		Rules: []Rule{
			{Label: "accountable | responsible | oversight", Delta: 2, Match: Any("accountable", "responsible", "oversight")},
			{Label: "audit | review | monitoring", Delta: 1, Match: Any("audit", "review", "monitoring")},
			{Label: "governance | compliance", Delta: 1, Match: Any("governance", "compliance")},
			{Label: "unaccountable | no oversight", Delta: -2, Match: Any("unaccountable", "no oversight")},
			{Label: "unchecked | unsupervised", Delta: -2, Match: Any("unchecked", "unsupervised")},
			{Label: "blame AND shift", Delta: -1, Match: All("blame", "shift")},
		},
		Concerns: []ConcernTrigger{
			{Keyword: "unaccountable", Text: "Lack of clear accountability structures"},
		},
		FallbackConcern: "Establish clear accountability frameworks",
		Recommendations: []string{
			"Implement oversight and review processes",
			"Define clear roles and responsibilities",
		},
	},
	{
		Name: RespectForPersons,
		Rules: []Rule{
			{Label: "consent AND NOT without", Delta: 2, Match: And(Any("consent"), Not(Any("without")))},
			{Label: "informed consent | explicit consent", Delta: 1, Match: Any("informed consent", "explicit consent")},
			{Label: "autonomy | choice | voluntary", Delta: 1, Match: Any("autonomy", "choice", "voluntary")},
			{Label: "dignity | respect", Delta: 1, Match: Any("dignity", "respect")},
			{Label: "without consent | coercive | manipulative", Delta: -2, Match: Any("without consent", "coercive", "manipulative")},
			{Label: "exploit | abuse", Delta: -2, Match: Any("exploit", "abuse")},
			{Label: "dehumanize | objectify", Delta: -2, Match: Any("dehumanize", "objectify")},
		},
		Concerns: []ConcernTrigger{
			{Keyword: "without consent", Text: "Violation of user autonomy and consent"},
			{Keyword: "exploit", Text: "Potential exploitation of users"},
		},
		FallbackConcern: "Ensure respect for human dignity and autonomy",
		Recommendations: []string{
			"Implement robust consent mechanisms",
			"Respect user autonomy and choice",
		},
	},
	{
		Name: NonMaleficence,
		Rules: []Rule{
			{Label: "safe | protect | secure", Delta: 2, Match: Any("safe", "protect", "secure")},
			{Label: "benefit | help | improve", Delta: 1, Match: Any("benefit", "help", "improve")},
			{Label: "risk assessment | mitigation", Delta: 1, Match: Any("risk assessment", "mitigation")},
			{Label: "harm | damage | hurt", Delta: -2, Match: Any("harm", "damage", "hurt")},
			{Label: "dangerous | (risky AND NOT assessment)", Delta: -2, Match: Or(Any("dangerous"), And(Any("risky"), Not(Any("assessment"))))},
			{Label: "addiction | (mental health AND negative)", Delta: -2, Match: Or(Any("addiction"), All("mental health", "negative"))},
		},
		Concerns: []ConcernTrigger{
			{Keyword: "harm", Text: "Potential for direct or indirect harm"},
			{Keyword: "dangerous", Text: "Safety risks identified"},
		},
		FallbackConcern: "Minimize potential for harm",
		Recommendations: []string{
			"Conduct thorough risk assessments",
			"Implement safety measures and monitoring",
		},
	},
}
