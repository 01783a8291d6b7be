package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grammarworks/internal/analysis"
	"grammarworks/internal/diagfmt"
	"grammarworks/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.g",
		Short: "Show the structural model of a grammar file",
		Long: `Parse recovers the grammar declaration, blocks, rules and groups of a file.
The msgpack format writes a compact binary dump of the same data as json`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	file, err := source.Load(args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	m := analysis.Analyze(file.Content)
	withTimings := timings(cmd)
	path := displayPath(file.Path)
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "pretty":
		diagfmt.ModelPretty(out, path, m, useColor(cfg.Output.Color, stdoutFile(cmd)))
		if withTimings {
			fmt.Fprintln(cmd.ErrOrStderr(), m.Timings.Summary())
		}
		return nil
	case "json":
		return diagfmt.ModelJSON(out, path, m, withTimings)
	case "msgpack":
		return diagfmt.WriteModelMsgpack(out, path, m, withTimings)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// loadModel reads and analyzes one grammar for the rule queries.
func loadModel(path string) (*source.File, *analysis.Model, error) {
	file, err := source.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return file, analysis.Analyze(file.Content), nil
}
