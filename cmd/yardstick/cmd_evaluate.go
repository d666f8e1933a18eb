package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
)

var evaluateFlags struct {
	scenario string
	response string
	format   string
	save     bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [scenario]",
	Short: "Evaluate one use case",
	Long: "Evaluate a scenario and its planned response. The scenario comes from\n" +
		"--scenario, the positional arguments, or stdin, in that order.",
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVarP(&evaluateFlags.scenario, "scenario", "s", "", "The use case or situation being evaluated")
	f.StringVarP(&evaluateFlags.response, "response", "r", "", "The planned response or implementation approach")
	f.StringVarP(&evaluateFlags.format, "format", "f", formatPretty, "Output format: markdown, pretty, json, yaml")
	f.BoolVar(&evaluateFlags.save, "save", false, "Record the evaluation to history")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if err := validateFormat(evaluateFlags.format); err != nil {
		return err
	}

	in := pipeline.Input{Scenario: evaluateFlags.scenario, Response: evaluateFlags.response}
	if in.Scenario == "" && len(args) > 0 {
		in.Scenario = strings.Join(args, " ")
	}
	if in.Scenario == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading scenario from stdin: %w", err)
		}
		in.Scenario = strings.TrimSpace(string(data))
	}

	report, err := pipeline.EvaluateInput(in)
	if err != nil {
		return err
	}

	if evaluateFlags.save {
		if err := saveResults([]pipeline.BatchResult{{Input: in, Report: report}}); err != nil {
			return err
		}
	}
	return writeReport(cmd.OutOrStdout(), evaluateFlags.format, in, report)
}

// saveResults records the successful results to the history store.
func saveResults(results []pipeline.BatchResult) error {
	store, err := history.New(history.Config{DataDir: app.cfg.DataDir, DefaultLimit: app.cfg.HistoryLimit})
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		e, err := store.Save(res.Input, res.Report)
		if err != nil {
			return err
		}
		app.log.Info("evaluation saved",
			zap.String("id", e.ID),
			zap.Float64("overall", res.Report.OverallScore),
		)
	}
	return nil
}
