package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
	"github.com/HendryAvila/yardstick/internal/render"
)

var historyFlags struct {
	limit  int
	format string
	export bool
	stats  bool
	input  string
}

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List saved evaluations, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.IntVarP(&historyFlags.limit, "limit", "n", 0, "Entries to list (default: YARDSTICK_HISTORY_LIMIT)")
	f.StringVarP(&historyFlags.format, "format", "f", "", "Output format: markdown, pretty, json or yaml")
	f.BoolVar(&historyFlags.export, "export", false, "Print every entry oldest first, as YAML unless --format is set")
	f.BoolVar(&historyFlags.stats, "stats", false, "Print aggregate statistics")
	f.StringVar(&historyFlags.input, "import", "", "Restore entries from a file written by --export (.json files as JSON, others as YAML)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format := historyFlags.format
	if format != "" {
		if err := validateFormat(format); err != nil {
			return err
		}
	}

	store, err := history.New(history.Config{DataDir: app.cfg.DataDir, DefaultLimit: app.cfg.HistoryLimit})
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case len(args) == 1:
		e, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if format == "" {
			format = formatPretty
		}
		if format == formatJSON || format == formatYAML {
			return writeStructured(out, format, e)
		}
		fmt.Fprintf(out, "Saved %s (%s)\n\n", e.CreatedAt.Local().Format(time.DateTime), e.ID)
		return writeReport(out, format, e.Input, e.Report)

	case historyFlags.input != "":
		entries, err := loadEntries(historyFlags.input)
		if err != nil {
			return err
		}
		res, err := store.Import(entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d entries, skipped %d already present.\n", res.Imported, res.Skipped)
		return nil

	case historyFlags.stats:
		s, err := store.Stats()
		if err != nil {
			return err
		}
		if format == formatJSON || format == formatYAML {
			return writeStructured(out, format, s)
		}
		fmt.Fprintf(out, "Evaluations:   %d\n", s.Total)
		fmt.Fprintf(out, "Average score: %.2f\n", s.AverageScore)
		for _, level := range []pipeline.RiskLevel{
			pipeline.RiskLow, pipeline.RiskMedium, pipeline.RiskConcerning, pipeline.RiskHigh,
		} {
			fmt.Fprintf(out, "  %-10s %d\n", level, s.ByRisk[level])
		}
		return nil
	}

	var entries []history.Entry
	if historyFlags.export {
		if format == "" {
			format = formatYAML
		}
		entries, err = store.Export()
	} else {
		entries, err = store.Recent(historyFlags.limit)
	}
	if err != nil {
		return err
	}

	if format == formatJSON || format == formatYAML {
		if entries == nil {
			entries = []history.Entry{}
		}
		return writeStructured(out, format, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No saved evaluations yet.")
		return nil
	}
	now := time.Now()
	for _, e := range entries {
		fmt.Fprintln(out, render.HistoryLine(e, now))
	}
	return nil
}

// loadEntries reads an export file. Files ending in .json are decoded as
// JSON, anything else as YAML.
func loadEntries(path string) ([]history.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var entries []history.Entry
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &entries)
	} else {
		err = yaml.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	return entries, nil
}
