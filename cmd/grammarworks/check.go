package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grammarworks/internal/diag"
	"grammarworks/internal/diagfmt"
	"grammarworks/internal/driver"
	"grammarworks/internal/source"
	"grammarworks/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Lint grammar files and directories",
		Long: `Check analyzes every grammar under the given paths (default: the current
directory) in parallel and reports duplicate rules, left recursion, unmatched
groups, empty alternatives and unterminated tokens`,
		RunE: runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 on warnings")
	return cmd
}

type checkRunOptions struct {
	jobs             int
	ui               uiMode
	format           string
	warningsAsErrors bool
}

func readCheckFlags(cmd *cobra.Command) (checkRunOptions, error) {
	var opts checkRunOptions
	var err error
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(format)
	switch opts.format {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("unknown format: %s", format)
	}
	if opts.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	run, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	batch := driver.BatchOptions{
		Check:      driver.CheckOptions(cfg),
		Jobs:       run.jobs,
		Extensions: cfg.Files.Extensions,
	}

	out := cmd.OutOrStdout()
	var results []driver.FileResult
	if run.format == "pretty" && !quiet(cmd) && shouldUseTUI(run.ui, stdoutFile(cmd)) {
		results, err = checkWithUI(cmd.Context(), out, paths, batch)
	} else {
		results, err = driver.CheckPaths(cmd.Context(), paths, batch)
	}
	if err != nil {
		return err
	}

	docs := make([]diagfmt.Document, len(results))
	for i := range results {
		r := &results[i]
		docs[i] = diagfmt.Document{Path: displayPath(r.Path), Model: r.Model, Bag: r.Bag}
	}
	summary := driver.Summarize(results)
	colored := useColor(cfg.Output.Color, stdoutFile(cmd))

	switch run.format {
	case "short":
		for _, doc := range docs {
			writeShort(out, doc)
		}
	case "json":
		err = diagfmt.JSON(out, docs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
			Max:              cfg.Check.MaxDiagnostics,
		})
		if err != nil {
			return err
		}
	default:
		opts := diagfmt.PrettyOpts{Color: colored, Context: true, ShowNotes: true, ShowFixes: true}
		for _, doc := range docs {
			diagfmt.Pretty(out, doc, opts)
		}
		if !quiet(cmd) {
			diagfmt.Summary(out, summary.Files, summary.Errors, summary.Warnings, summary.Infos, colored)
			if timings(cmd) {
				fmt.Fprintln(cmd.ErrOrStderr(), summary.Timings.Summary())
			}
		}
	}

	if summary.Errors > 0 || summary.Failed > 0 || (run.warningsAsErrors && summary.Warnings > 0) {
		cmd.SilenceErrors = true
		return errReported
	}
	return nil
}

// writeShort prints one line per diagnostic, grep-friendly.
func writeShort(out io.Writer, doc diagfmt.Document) {
	if doc.Bag == nil || doc.Bag.Len() == 0 {
		return
	}
	var (
		text  string
		lines source.Lines
	)
	if doc.Model != nil {
		text, lines = doc.Model.Text, doc.Model.Lines
	}
	fmt.Fprintln(out, diag.FormatShort(doc.Bag.Items(), doc.Path, text, lines, true))
}

// checkWithUI runs the batch in the background and renders its events.
func checkWithUI(ctx context.Context, out io.Writer, paths []string, batch driver.BatchOptions) ([]driver.FileResult, error) {
	files, err := driver.ListGrammarFiles(paths, batch.Extensions)
	if err != nil {
		return nil, err
	}
	type outcome struct {
		results []driver.FileResult
		err     error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		batch.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckPaths(ctx, paths, batch)
		outcomeCh <- outcome{results: res, err: err}
		close(events)
	}()

	title := fmt.Sprintf("grammarworks check (%d files)", len(files))
	uiErr := ui.RunCheckProgress(out, title, files, events)
	res := <-outcomeCh
	if uiErr != nil {
		return res.results, uiErr
	}
	return res.results, res.err
}
