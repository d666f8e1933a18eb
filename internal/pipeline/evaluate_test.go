package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scoresOf(r Report) []int {
	out := make([]int, len(r.Frameworks))
	for i, f := range r.Frameworks {
		out[i] = f.Score
	}
	return out
}

// --- Validation ---

func TestEvaluate_EmptyScenarioFails(t *testing.T) {
	for _, scenario := range []string{"", "   ", "\n\t"} {
		_, err := Evaluate(scenario, "some response")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Evaluate(%q) error = %v, want ErrInvalidInput", scenario, err)
		}
	}
}

func TestEvaluate_EmptyResponseAccepted(t *testing.T) {
	if _, err := Evaluate("a scenario", ""); err != nil {
		t.Fatalf("Evaluate with empty response failed: %v", err)
	}
}

// --- Worked examples ---

func TestEvaluate_NeutralTopic(t *testing.T) {
	r, err := Evaluate("neutral topic", "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if diff := cmp.Diff([]int{3, 3, 3, 3, 3}, scoresOf(r)); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	if r.OverallScore != 3.0 {
		t.Errorf("OverallScore = %v, want 3.0", r.OverallScore)
	}
	if r.RiskLevel != RiskConcerning {
		t.Errorf("RiskLevel = %q, want %q", r.RiskLevel, RiskConcerning)
	}
	if r.Interpretation != EthicallyConcerning {
		t.Errorf("Interpretation = %q, want %q", r.Interpretation, EthicallyConcerning)
	}

	want := []string{
		"📈 IMPROVEMENT: Develop 90-day action plan addressing identified gaps",
		"🎯 Set measurable ethical performance targets with monthly progress reviews",
	}
	if diff := cmp.Diff(want, r.KeyRecommendations); diff != "" {
		t.Errorf("KeyRecommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_AllPositive(t *testing.T) {
	r, err := Evaluate("a fair, transparent, accountable system with informed consent and safe operation", "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if diff := cmp.Diff([]int{5, 5, 5, 5, 5}, scoresOf(r)); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	if r.OverallScore != 5.0 {
		t.Errorf("OverallScore = %v, want 5.0", r.OverallScore)
	}
	if r.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want %q", r.RiskLevel, RiskLow)
	}
	if r.Interpretation != ExtremelyEthical {
		t.Errorf("Interpretation = %q, want %q", r.Interpretation, ExtremelyEthical)
	}
	if len(r.KeyRecommendations) != 3 || !strings.Contains(r.KeyRecommendations[0], "EXCELLENCE") {
		t.Errorf("KeyRecommendations = %v, want the three excellence messages", r.KeyRecommendations)
	}
}

func TestEvaluate_AllNegative(t *testing.T) {
	r, err := Evaluate("a biased, discriminatory, black box, unaccountable system used without consent that causes harm and is dangerous", "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// "unaccountable" also contains "accountable", so Accountability nets to 3.
	if diff := cmp.Diff([]int{1, 1, 3, 1, 0}, scoresOf(r)); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	if r.OverallScore != 1.2 {
		t.Errorf("OverallScore = %v, want 1.2", r.OverallScore)
	}
	if r.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %q, want %q", r.RiskLevel, RiskHigh)
	}
	if r.Interpretation != NotEthical {
		t.Errorf("Interpretation = %q, want %q", r.Interpretation, NotEthical)
	}

	want := []string{
		"🚨 CRITICAL: Halt deployment immediately - multiple severe ethical violations detected",
		"📋 Conduct full ethical impact assessment with external ethics board review",
		"⚖️ URGENT: Implement algorithmic fairness testing across protected classes and demographic groups",
		"📊 Establish bias monitoring dashboards with automated alerts for discriminatory outcomes",
		"🔍 CRITICAL: Replace black-box models with interpretable alternatives or add explanation layers",
		"📖 Create user-facing decision explanation system with plain-language summaries",
		"✋ CRITICAL: Redesign system with granular, informed consent as prerequisite",
	}
	if diff := cmp.Diff(want, r.KeyRecommendations); diff != "" {
		t.Errorf("KeyRecommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_ResponseIsPartOfText(t *testing.T) {
	withResponse, err := Evaluate("a scoring tool", "we keep it transparent")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got, _ := withResponse.Framework(TransparencyTrust); got.Score != 5 {
		t.Errorf("Transparency score = %d, want 5 from response text", got.Score)
	}
}

func TestEvaluate_CaseInsensitive(t *testing.T) {
	lower, _ := Evaluate("a fair system", "")
	upper, _ := Evaluate("A FAIR SYSTEM", "")
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Errorf("case should not matter (-lower +upper):\n%s", diff)
	}
}

// --- Properties ---

var propertyInputs = []Input{
	{Scenario: "neutral topic"},
	{Scenario: "a healthcare chatbot"},
	{Scenario: "a medical triage tool used without consent"},
	{Scenario: "privilege, secret, blame shift, abuse"},
	{Scenario: "an automated hiring tool for school children with tracking"},
	{Scenario: "a new loan approval model", Response: "uses machine learning with biometric checks for policing"},
	{Scenario: "a hidden, opaque, unchecked scoring tool that may exploit users and cause damage"},
	{Scenario: "fair transparent explainable accountable audit consent safe benefit"},
}

func TestEvaluate_Properties(t *testing.T) {
	for _, in := range propertyInputs {
		t.Run(in.Scenario, func(t *testing.T) {
			r, err := EvaluateInput(in)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}

			if len(r.Frameworks) != 5 {
				t.Fatalf("len(Frameworks) = %d, want 5", len(r.Frameworks))
			}
			sum := 0
			for _, f := range r.Frameworks {
				if f.Score < MinScore || f.Score > MaxScore {
					t.Errorf("%s score %d out of range", f.Name, f.Score)
				}
				if len(f.Concerns) == 0 {
					t.Errorf("%s has no concerns", f.Name)
				}
				sum += f.Score
			}
			if r.OverallScore != float64(sum)/5 {
				t.Errorf("OverallScore = %v, want mean %v", r.OverallScore, float64(sum)/5)
			}
			if r.RiskLevel != RiskFor(r.OverallScore) {
				t.Errorf("RiskLevel = %q, want %q", r.RiskLevel, RiskFor(r.OverallScore))
			}
			if r.Interpretation != Interpret(r.OverallScore) {
				t.Errorf("Interpretation = %q, want %q", r.Interpretation, Interpret(r.OverallScore))
			}
			if n := len(r.KeyRecommendations); n == 0 || n > MaxKeyRecommendations {
				t.Errorf("len(KeyRecommendations) = %d, want 1..%d", n, MaxKeyRecommendations)
			}

			again, _ := EvaluateInput(in)
			if diff := cmp.Diff(r, again); diff != "" {
				t.Errorf("Evaluate is not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_HealthcareAlwaysAddsOverlay(t *testing.T) {
	overlay := []string{
		"🩺 Ensure FDA compliance pathway and clinical validation with safety monitoring",
		"🏥 MANDATORY: Implement HIPAA-compliant informed consent with IRB oversight",
	}
	scenarios := []string{
		"a healthcare chatbot",
		"a fair, transparent healthcare service with informed consent",
		"a healthcare tool used without consent",
		"dangerous harmful healthcare bias",
	}
	for _, s := range scenarios {
		r, err := Evaluate(s, "")
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", s, err)
		}
		found := false
		for _, rec := range r.KeyRecommendations {
			if rec == overlay[0] || rec == overlay[1] {
				found = true
			}
		}
		if !found {
			t.Errorf("Evaluate(%q) recommendations %v lack a healthcare overlay message", s, r.KeyRecommendations)
		}
	}
}

// --- Report helpers ---

func TestReport_CloneIsDeep(t *testing.T) {
	r, _ := Evaluate("a healthcare chatbot", "")
	c := r.Clone()
	c.Frameworks[0].Concerns[0] = "changed"
	c.KeyRecommendations[0] = "changed"

	if r.Frameworks[0].Concerns[0] == "changed" || r.KeyRecommendations[0] == "changed" {
		t.Error("Clone should not share slices with the original")
	}
}

func TestReport_FrameworkLookup(t *testing.T) {
	r, _ := Evaluate("neutral topic", "")
	if _, ok := r.Framework(Accountability); !ok {
		t.Error("Framework(Accountability) should be found")
	}
	if _, ok := r.Framework("Beneficence"); ok {
		t.Error("Framework(Beneficence) should not be found")
	}
}
