package pipeline

import "slices"

// MaxKeyRecommendations caps the length of Report.KeyRecommendations.
const MaxKeyRecommendations = 7

// Score cut-offs used by the recommendation cascade.
const (
	lowScoreCutoff      = 2.5
	criticalScoreCutoff = 1.5
	widespreadCount     = 3
)

// Signals is everything a trigger may inspect.
type Signals struct {
	Text       string
	Frameworks []FrameworkResult
	Overall    float64
}

func (s Signals) has(phrases ...string) bool {
	return containsAny(s.Text, phrases...)
}

func (s Signals) countBelow(cutoff float64) int {
	n := 0
	for _, f := range s.Frameworks {
		if float64(f.Score) < cutoff {
			n++
		}
	}
	return n
}

func (s Signals) scoreOf(name FrameworkName) (int, bool) {
	for _, f := range s.Frameworks {
		if f.Name == name {
			return f.Score, true
		}
	}
	return 0, false
}

// Trigger is one named step of the recommendation cascade. Fire returns
// a fresh slice of messages to append, or nil when the trigger does not
// apply.
type Trigger struct {
	Name string
	Fire func(Signals) []string
}

// Triggers returns the cascade in evaluation order.
func Triggers() []Trigger {
	return append([]Trigger(nil), cascade...)
}

// Prioritize runs the cascade and returns at most MaxKeyRecommendations
// messages in trigger order. It never returns an empty list.
func Prioritize(sig Signals) []string {
	var recs []string
	for _, t := range cascade {
		recs = append(recs, t.Fire(sig)...)
	}
	if len(recs) == 0 {
		recs = append(recs, fallbackRecommendations...)
	}
	if len(recs) > MaxKeyRecommendations {
		recs = recs[:MaxKeyRecommendations]
	}
	return recs
}

var cascade = []Trigger{
	{Name: "severity", Fire: severity},

	frameworkTrigger(JusticeEquity, []string{"bias", "discrimination"},
		[]string{
			"⚖️ URGENT: Implement algorithmic fairness testing across protected classes and demographic groups",
			"📊 Establish bias monitoring dashboards with automated alerts for discriminatory outcomes",
		},
		"🏛️ Develop comprehensive equity framework with measurable fairness metrics"),
	frameworkTrigger(TransparencyTrust, []string{"black box", "opaque"},
		[]string{
			"🔍 CRITICAL: Replace black-box models with interpretable alternatives or add explanation layers",
			"📖 Create user-facing decision explanation system with plain-language summaries",
		},
		"💡 Implement explainable AI interfaces showing decision factors and confidence levels"),
	frameworkTrigger(Accountability, []string{"unaccountable", "no oversight"},
		[]string{
			"👥 IMMEDIATE: Establish AI governance committee with clear escalation procedures",
			"🔍 Implement continuous audit trail with human reviewers for high-impact decisions",
		},
		"📋 Create formal accountability framework with designated responsible parties"),
	frameworkTrigger(RespectForPersons, []string{"without consent", "coercive"},
		[]string{
			"✋ CRITICAL: Redesign system with granular, informed consent as prerequisite",
			"🔒 Implement user data sovereignty controls with easy opt-out mechanisms",
		},
		"🤝 Strengthen user autonomy protections with enhanced consent management"),
	frameworkTrigger(NonMaleficence, []string{"harm", "dangerous"},
		[]string{
			"🛡️ URGENT: Conduct comprehensive harm assessment with mitigation protocols",
			"⚡ Deploy real-time safety monitoring with automatic system shutdown triggers",
		},
		"🔍 Establish proactive risk monitoring with regular safety assessments"),

	{Name: "domain/healthcare", Fire: healthcare},
	overlay("domain/children", []string{"children", "minors", "school"},
		"👶 CRITICAL: Implement COPPA-compliant parental consent with age verification",
		"🎓 Establish educational ethics review board with child development experts",
		"🔒 Deploy enhanced privacy protections exceeding adult standards"),
	overlay("domain/hiring", []string{"hiring", "employment", "recruitment"},
		"💼 LEGAL REQUIREMENT: Ensure EEOC compliance with adverse impact testing",
		"📊 Implement demographic parity monitoring across hiring funnel stages",
		"📝 Provide detailed decision explanations to all candidates per legal requirements"),
	overlay("domain/credit", []string{"credit", "loan", "financial"},
		"💳 REGULATORY: Implement Fair Credit Reporting Act compliance with adverse action notices",
		"⚖️ Deploy ECOA-compliant fairness testing across protected classes"),
	overlay("domain/criminal-justice", []string{"criminal justice", "policing", "sentencing"},
		"⚖️ CONSTITUTIONAL: Implement due process protections with judicial oversight",
		"📊 Mandate racial bias testing with community accountability measures"),
	overlay("domain/surveillance", []string{"surveillance", "monitoring", "tracking"},
		"📹 PRIVACY: Establish strict data minimization with automatic deletion schedules",
		"🔔 Implement transparent notification system with user control mechanisms",
		"⚖️ Ensure compliance with applicable surveillance laws and constitutional protections"),
	overlay("domain/biometric", []string{"facial recognition", "biometric"},
		"👤 ACCURACY: Mandate demographic accuracy testing with 99%+ parity across groups",
		"🔒 Implement biometric data protection with encryption and limited retention"),
	overlay("domain/automation", []string{"automated", "autonomous"},
		"🤖 HUMAN OVERSIGHT: Provide meaningful human review for all consequential decisions",
		"⚡ Deploy kill switches and human override capabilities"),
	overlay("domain/ml", []string{"ai training", "machine learning"},
		"📊 DATA QUALITY: Audit training data for bias, representation, and consent compliance",
		"🔄 Implement continuous model monitoring with performance degradation alerts"),

	{Name: "tier", Fire: tier},
	{Name: "oversight", Fire: oversight},
	overlay("novelty", []string{"new", "novel", "innovative"},
		"🔬 RESEARCH: Collaborate with ethics researchers to establish new standards",
		"🌍 Consider broader societal impact beyond immediate use case"),
}

var fallbackRecommendations = []string{
	"📋 Conduct comprehensive ethical framework assessment using established guidelines",
	"👥 Establish stakeholder engagement process for ethical input",
	"🔄 Implement regular ethical review cycles with documented procedures",
}

// severity handles the case where several frameworks fail at once.
// Halt and pause are mutually exclusive.
func severity(s Signals) []string {
	switch {
	case s.countBelow(criticalScoreCutoff) >= widespreadCount:
		return []string{
			"🚨 CRITICAL: Halt deployment immediately - multiple severe ethical violations detected",
			"📋 Conduct full ethical impact assessment with external ethics board review",
		}
	case s.countBelow(lowScoreCutoff) >= widespreadCount:
		return []string{
			"⚠️ HIGH PRIORITY: Pause implementation pending ethics board review and remediation",
		}
	}
	return nil
}

// frameworkTrigger fires when name scores below the low cut-off. The
// severe messages replace the generic one when any severe keyword occurs.
func frameworkTrigger(name FrameworkName, severe, severeMsgs []string, generic string) Trigger {
	return Trigger{
		Name: "framework/" + string(name),
		Fire: func(s Signals) []string {
			score, ok := s.scoreOf(name)
			if !ok || float64(score) >= lowScoreCutoff {
				return nil
			}
			if s.has(severe...) {
				return slices.Clone(severeMsgs)
			}
			return []string{generic}
		},
	}
}

func overlay(name string, keywords []string, msgs ...string) Trigger {
	return Trigger{
		Name: name,
		Fire: func(s Signals) []string {
			if s.has(keywords...) {
				return slices.Clone(msgs)
			}
			return nil
		},
	}
}

func healthcare(s Signals) []string {
	if !s.has("healthcare", "medical") {
		return nil
	}
	if s.has("without consent") {
		return []string{
			"🏥 MANDATORY: Implement HIPAA-compliant informed consent with IRB oversight",
			"⚕️ Require clinical ethics committee approval before any patient data use",
		}
	}
	return []string{
		"🩺 Ensure FDA compliance pathway and clinical validation with safety monitoring",
		"📋 Implement medical ethics oversight with physician-in-the-loop validation",
	}
}

// tier picks one message set by overall score. Below 2.0 nothing fires.
func tier(s Signals) []string {
	switch {
	case s.Overall >= 4.0:
		return []string{
			"✅ EXCELLENCE: Document current practices as organizational best practices template",
			"📚 Establish ethics training program using this use case as positive example",
			"🔄 Implement quarterly ethics reviews to maintain high standards",
		}
	case s.Overall >= 3.0:
		return []string{
			"📈 IMPROVEMENT: Develop 90-day action plan addressing identified gaps",
			"🎯 Set measurable ethical performance targets with monthly progress reviews",
		}
	case s.Overall >= 2.0:
		return []string{
			"🚧 MAJOR REVISION: Redesign core system components to address ethical deficiencies",
			"👨‍⚖️ Engage external ethics consultants for independent assessment and guidance",
		}
	}
	return nil
}

func oversight(s Signals) []string {
	if s.Overall < lowScoreCutoff {
		return []string{
			"🔍 MANDATORY: Establish independent ethics oversight board with veto power",
			"📋 Require ethics impact assessment for any system modifications",
		}
	}
	return nil
}
