package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/yardstick/internal/pipeline"
)

var batchFlags struct {
	format   string
	parallel int
	save     bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Evaluate every use case in a YAML file",
	Long: "Evaluate a YAML list of use cases, each with a scenario and an optional\n" +
		"response. Use - to read the list from stdin.\n\n" +
		"  - scenario: An AI triage assistant in a hospital\n" +
		"    response: Clinicians confirm every suggestion",
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.format, "format", "f", formatMarkdown, "Output format: markdown, pretty, json, yaml")
	f.IntVarP(&batchFlags.parallel, "parallel", "p", 0, "Maximum concurrent evaluations (default: YARDSTICK_BATCH_PARALLEL)")
	f.BoolVar(&batchFlags.save, "save", false, "Record successful evaluations to history")
}

// batchItem is the structured output for one batch input.
type batchItem struct {
	Index  int              `json:"index" yaml:"index"`
	Input  pipeline.Input   `json:"input" yaml:"input"`
	Report *pipeline.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(batchFlags.format); err != nil {
		return err
	}

	inputs, err := loadBatch(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	parallel := batchFlags.parallel
	if parallel <= 0 {
		parallel = app.cfg.BatchParallel
	}
	cache := pipeline.NewCache(app.cfg.CacheSize)

	results, err := pipeline.EvaluateBatch(cmd.Context(), inputs, parallel, cache.Evaluate)
	if err != nil {
		return err
	}
	stats := cache.Stats()
	app.log.Debug("batch evaluated",
		zap.Int("inputs", len(inputs)),
		zap.Int("parallel", parallel),
		zap.Int64("cache_hits", stats.Hits),
	)

	if batchFlags.save {
		if err := saveResults(results); err != nil {
			return err
		}
	}

	if err := writeBatch(cmd.OutOrStdout(), batchFlags.format, results); err != nil {
		return err
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// loadBatch reads a YAML list of inputs from path, or from stdin when
// path is "-".
func loadBatch(stdin io.Reader, path string) ([]pipeline.Input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var inputs []pipeline.Input
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("batch file %s is empty", path)
		}
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("batch file %s holds no inputs", path)
	}
	return inputs, nil
}

func writeBatch(w io.Writer, format string, results []pipeline.BatchResult) error {
	if format == formatJSON || format == formatYAML {
		items := make([]batchItem, len(results))
		for i, res := range results {
			items[i] = batchItem{Index: res.Index, Input: res.Input}
			if res.Err != nil {
				items[i].Error = res.Err.Error()
			} else {
				r := res.Report
				items[i].Report = &r
			}
		}
		return writeStructured(w, format, items)
	}

	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		if res.Err != nil {
			fmt.Fprintf(&sb, "# Input %d\n\n**Error:** %v\n", res.Index+1, res.Err)
			continue
		}
		if err := writeReport(&sb, formatMarkdown, res.Input, res.Report); err != nil {
			return err
		}
	}
	return writeMarkdown(w, format, sb.String())
}

func countFailed(results []pipeline.BatchResult) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
