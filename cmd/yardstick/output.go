package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/yardstick/internal/pipeline"
	"github.com/HendryAvila/yardstick/internal/render"
)

// Output formats.
const (
	formatMarkdown = "markdown"
	formatPretty   = "pretty"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

// terminalWidth is the wrap width for pretty output.
const terminalWidth = 100

func validateFormat(format string) error {
	switch format {
	case formatMarkdown, formatPretty, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q: use markdown, pretty, json or yaml", format)
}

// writeReport prints one report in the requested format.
func writeReport(w io.Writer, format string, in pipeline.Input, r pipeline.Report) error {
	switch format {
	case formatJSON, formatYAML:
		return writeStructured(w, format, r)
	}

	md, err := render.Markdown(in, r)
	if err != nil {
		return err
	}
	return writeMarkdown(w, format, md)
}

// writeMarkdown prints md as-is, or styled for a terminal when format
// is pretty.
func writeMarkdown(w io.Writer, format, md string) error {
	if format == formatPretty {
		styled, err := render.Terminal(md, terminalWidth)
		if err != nil {
			return err
		}
		md = styled
	}
	_, err := io.WriteString(w, md)
	return err
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
