// Package render turns evaluation reports into human-readable text.
//
// Markdown is the canonical form, produced from an embedded template.
// Terminal styles that markdown for a TTY, and HistoryLine gives the
// compact one-line form used by history listings.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultWidth is the wrap width used when Terminal gets width <= 0.
const DefaultWidth = 80

var reportTmpl = template.Must(
	template.New("report.md.tmpl").
		Funcs(template.FuncMap{
			"upper": strings.ToUpper,
			"bar":   ScoreBar,
			"band":  pipeline.BandFor,
		}).
		ParseFS(templateFS, "templates/report.md.tmpl"),
)

type reportData struct {
	Input  pipeline.Input
	Report pipeline.Report
}

// Markdown renders a full report for the given input.
func Markdown(in pipeline.Input, report pipeline.Report) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, reportData{Input: in, Report: report}); err != nil {
		return "", fmt.Errorf("render: executing report template: %w", err)
	}
	return buf.String(), nil
}

// ScoreBar draws a framework score as five cells, filled up to score.
func ScoreBar(score int) string {
	filled := max(pipeline.MinScore, min(pipeline.MaxScore, score))
	return strings.Repeat("█", filled) + strings.Repeat("░", pipeline.MaxScore-filled)
}

// Terminal styles markdown for display in a terminal, wrapped at width.
func Terminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", fmt.Errorf("render: creating terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render: styling markdown: %w", err)
	}
	return out, nil
}

// maxScenarioRunes caps the scenario excerpt in HistoryLine.
const maxScenarioRunes = 60

// HistoryLine summarizes an entry on one line, e.g.
//
//	3f2a9c1e  3.00  concerning  2 minutes ago  An AI hiring tool that...
func HistoryLine(e history.Entry, now time.Time) string {
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s  %.2f  %-10s  %s  %s",
		id,
		e.Report.OverallScore,
		e.Report.RiskLevel,
		humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
		excerpt(e.Input.Scenario, maxScenarioRunes),
	)
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
