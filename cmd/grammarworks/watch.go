package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"grammarworks/internal/check"
	"grammarworks/internal/diagfmt"
	"grammarworks/internal/driver"
	"grammarworks/internal/logging"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] file.g",
		Short: "Re-check a grammar file every time it is written",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	addLogFlags(cmd)
	return cmd
}

// addLogFlags registers the logging flags shared by watch and lsp.
func addLogFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-level", "info", "log level (debug|info|warn|error)")
	cmd.Flags().String("log-format", "text", "log format (text|json)")
	cmd.Flags().BoolP("verbose", "v", false, "shorthand for --log-level=debug")
}

func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = logrus.DebugLevel
	}
	return logging.New(cmd.ErrOrStderr(), level, format), nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()
	// каталог, а не файл: редакторы сохраняют через rename
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w := &grammarWatcher{
		path:    target,
		display: displayPath(target),
		opts:    driver.CheckOptions(cfg),
		out:     cmd.OutOrStdout(),
		pretty:  diagfmt.PrettyOpts{Color: useColor(cfg.Output.Color, stdoutFile(cmd)), Context: true, ShowNotes: true, ShowFixes: true},
		log:     log,
	}
	w.recheck("initial")
	return w.loop(cmd.Context(), watcher.Events, watcher.Errors)
}

// grammarWatcher re-checks one file. Writes that leave the content unchanged
// are skipped by comparing content fingerprints.
type grammarWatcher struct {
	path    string
	display string
	opts    check.Options
	out     io.Writer
	pretty  diagfmt.PrettyOpts
	log     *logrus.Logger

	last    uint64
	checked bool
}

func (w *grammarWatcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	w.log.WithField("path", w.display).Info("watching")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.recheck(ev.Op.String())
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("event queue overflow, re-checking")
				w.recheck("overflow")
				continue
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}

func (w *grammarWatcher) recheck(reason string) {
	res, err := driver.AnalyzeFile(w.path, w.opts)
	if err != nil {
		w.log.WithError(err).Warn("failed to load")
		return
	}
	entry := w.log.WithFields(logrus.Fields{"reason": reason, "hash": fmt.Sprintf("%016x", res.File.Hash)})
	if w.checked && res.File.Hash == w.last {
		entry.Debug("content unchanged, skipped")
		return
	}
	w.last, w.checked = res.File.Hash, true

	diagfmt.Pretty(w.out, diagfmt.Document{Path: w.display, Model: res.Model, Bag: res.Bag}, w.pretty)
	entry.WithFields(logrus.Fields{
		"rules":       len(res.Model.Rules),
		"diagnostics": res.Bag.Len(),
	}).Info("checked")
}
