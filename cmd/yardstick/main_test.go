package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	evaluateFlags.scenario, evaluateFlags.response = "", ""
	evaluateFlags.format, evaluateFlags.save = formatPretty, false
	batchFlags.format, batchFlags.parallel, batchFlags.save = formatMarkdown, 0, false
	historyFlags.limit, historyFlags.format = 0, ""
	historyFlags.export, historyFlags.stats, historyFlags.input = false, false, ""
	rootFlags.logLevel = ""

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// --- evaluate ---

func TestEvaluate_JSON(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "--data-dir", dir, "evaluate",
		"--scenario", "A hiring model", "--response", "with human review", "--format", "json")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	var got pipeline.Report
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	want, _ := pipeline.Evaluate("A hiring model", "with human review")
	if got.OverallScore != want.OverallScore || got.RiskLevel != want.RiskLevel {
		t.Errorf("report = %.2f/%s, want %.2f/%s", got.OverallScore, got.RiskLevel, want.OverallScore, want.RiskLevel)
	}
}

func TestEvaluate_ScenarioFromArgsAndStdin(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "--data-dir", dir, "evaluate", "--format", "markdown", "neutral", "topic")
	if err != nil {
		t.Fatalf("evaluate from args failed: %v", err)
	}
	if !strings.Contains(out, "neutral topic") {
		t.Errorf("scenario from args not used:\n%s", out)
	}

	out, err = execute(t, "  piped scenario \n", "--data-dir", dir, "evaluate", "--format", "yaml")
	if err != nil {
		t.Fatalf("evaluate from stdin failed: %v", err)
	}
	var got pipeline.Report
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a YAML report: %v", err)
	}
	if len(got.Frameworks) != 5 {
		t.Errorf("frameworks = %d, want 5", len(got.Frameworks))
	}
}

func TestEvaluate_EmptyScenarioFails(t *testing.T) {
	_, err := execute(t, "   ", "--data-dir", t.TempDir(), "evaluate", "--format", "json")
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestEvaluate_UnknownFormat(t *testing.T) {
	_, err := execute(t, "", "--data-dir", t.TempDir(), "evaluate", "-s", "x", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("err = %v, want unknown format error", err)
	}
}

func TestEvaluate_SaveThenHistory(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "", "--data-dir", dir, "evaluate", "-s", "first case", "-f", "json", "--save"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := execute(t, "", "--data-dir", dir, "evaluate", "-s", "second case", "-f", "json", "--save"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	out, err := execute(t, "", "--data-dir", dir, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("history lines = %d, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "second case") {
		t.Errorf("history should be newest first:\n%s", out)
	}

	out, err = execute(t, "", "--data-dir", dir, "history", "--export", "--format", "json")
	if err != nil {
		t.Fatalf("history --export: %v", err)
	}
	var entries []struct {
		ID    string         `json:"id"`
		Input pipeline.Input `json:"input"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].Input.Scenario != "first case" {
		t.Fatalf("export should be oldest first: %+v", entries)
	}

	out, err = execute(t, "", "--data-dir", dir, "history", entries[0].ID, "--format", "markdown")
	if err != nil {
		t.Fatalf("history <id>: %v", err)
	}
	if !strings.Contains(out, "first case") || !strings.Contains(out, entries[0].ID) {
		t.Errorf("history <id> should render the entry:\n%s", out)
	}

	out, err = execute(t, "", "--data-dir", dir, "history", "--stats")
	if err != nil {
		t.Fatalf("history --stats: %v", err)
	}
	if !strings.Contains(out, "Evaluations:   2") {
		t.Errorf("stats output:\n%s", out)
	}
}

func TestHistory_ExportImportRoundTrip(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()

	if _, err := execute(t, "", "--data-dir", src, "evaluate", "-s", "kept case", "-f", "json", "--save"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for _, ext := range []string{".json", ".yaml"} {
		format := strings.TrimPrefix(ext, ".")
		exported, err := execute(t, "", "--data-dir", src, "history", "--export", "--format", format)
		if err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		path := writeFile(t, "backup"+ext, exported)

		out, err := execute(t, "", "--data-dir", dst, "history", "--import", path)
		if err != nil {
			t.Fatalf("import %s: %v", format, err)
		}
		want := "Imported 1 entries, skipped 0"
		if ext == ".yaml" {
			want = "Imported 0 entries, skipped 1"
		}
		if !strings.Contains(out, want) {
			t.Errorf("import %s output = %q, want %q", format, out, want)
		}
	}

	out, err := execute(t, "", "--data-dir", dst, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "kept case") {
		t.Errorf("imported entry missing:\n%s", out)
	}
}

func TestHistory_ExportDefaultsToImportableYAML(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()

	if _, err := execute(t, "", "--data-dir", src, "evaluate", "-s", "backed up case", "-f", "json", "--save"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	exported, err := execute(t, "", "--data-dir", src, "history", "--export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var entries []map[string]any
	if err := yaml.Unmarshal([]byte(exported), &entries); err != nil || len(entries) != 1 {
		t.Fatalf("default export should be a YAML list (err %v):\n%s", err, exported)
	}

	out, err := execute(t, "", "--data-dir", dst, "history", "--import", writeFile(t, "backup.txt", exported))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 entries, skipped 0") {
		t.Errorf("import output = %q", out)
	}
}

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, "", "--data-dir", t.TempDir(), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No saved evaluations yet.") {
		t.Errorf("unexpected output: %s", out)
	}
}

// --- batch ---

const batchYAML = `
- scenario: A patient triage assistant
  response: Clinicians confirm every suggestion
- scenario: "   "
- scenario: A patient triage assistant
  response: Clinicians confirm every suggestion
`

func TestLoadBatch(t *testing.T) {
	inputs, err := loadBatch(nil, writeFile(t, "cases.yaml", batchYAML))
	if err != nil {
		t.Fatalf("loadBatch: %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("inputs = %d, want 3", len(inputs))
	}
	if inputs[0].Response != "Clinicians confirm every suggestion" {
		t.Errorf("response not parsed: %+v", inputs[0])
	}

	fromStdin, err := loadBatch(strings.NewReader(batchYAML), "-")
	if err != nil {
		t.Fatalf("loadBatch(-): %v", err)
	}
	if len(fromStdin) != 3 {
		t.Errorf("stdin inputs = %d, want 3", len(fromStdin))
	}
}

func TestLoadBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"empty list", "[]\n"},
		{"not a list", "scenario: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadBatch(nil, writeFile(t, "cases.yaml", tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := loadBatch(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatch_JSONReportsPerItemErrors(t *testing.T) {
	path := writeFile(t, "cases.yaml", batchYAML)

	out, err := execute(t, "", "--data-dir", t.TempDir(), "batch", path, "--format", "json", "--parallel", "2")
	if err == nil || !strings.Contains(err.Error(), "1 of 3 inputs failed") {
		t.Errorf("err = %v, want 1 of 3 inputs failed", err)
	}

	var items []batchItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, it := range items {
		if it.Index != i {
			t.Errorf("items[%d].Index = %d", i, it.Index)
		}
	}
	if items[1].Error == "" || items[1].Report != nil {
		t.Errorf("blank scenario should fail: %+v", items[1])
	}
	if items[0].Report == nil || items[2].Report == nil {
		t.Fatal("valid inputs should have reports")
	}
	if items[0].Report.OverallScore != items[2].Report.OverallScore {
		t.Error("identical inputs should produce identical reports")
	}
}

func TestBatch_Markdown(t *testing.T) {
	path := writeFile(t, "cases.yaml", "- scenario: first\n- scenario: second\n")

	out, err := execute(t, "", "--data-dir", t.TempDir(), "batch", path)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if strings.Count(out, "# Ethical Evaluation") != 2 {
		t.Errorf("expected two reports:\n%s", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("reports should keep input order")
	}
}

// --- formats ---

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatMarkdown, formatPretty, formatJSON, formatYAML} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("html"); err == nil {
		t.Error("validateFormat(html) should fail")
	}
}
