package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"grammarworks/internal/check"
	"grammarworks/internal/diag"
	"grammarworks/internal/observ"
	"grammarworks/internal/source"
)

// BatchOptions configures CheckPaths.
type BatchOptions struct {
	Check      check.Options
	Jobs       int      // 0 means GOMAXPROCS
	Extensions []string // used when walking directories
	Sink       ProgressSink
}

// ListGrammarFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are kept whatever their extension; directories are
// walked for files with one of exts.
func ListGrammarFiles(paths []string, exts []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && slices.Contains(exts, filepath.Ext(path)) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return slices.Compact(files), nil
}

// CheckPaths checks every grammar under paths in parallel. Results follow the
// order of ListGrammarFiles. A file that fails to load yields a result with an
// I/O diagnostic; only cancellation and listing errors are returned.
func CheckPaths(ctx context.Context, paths []string, opts BatchOptions) ([]FileResult, error) {
	files, err := ListGrammarFiles(paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()

			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
			file, err := source.Load(path)
			if err != nil {
				results[i] = loadFailure(path, err, opts.Check.MaxDiagnostics)
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return nil
			}

			emit(opts.Sink, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
			res := AnalyzeSource(file, opts.Check)
			res.Path = path
			results[i] = *res

			emit(opts.Sink, Event{File: path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(started), Diagnostics: res.Bag.Len()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	emit(opts.Sink, Event{Stage: StageCheck, Status: StatusDone})
	return results, nil
}

// Summary aggregates a batch.
type Summary struct {
	Files    int
	Failed   int
	Rules    int
	Errors   int
	Warnings int
	Infos    int
	Timings  observ.Report
}

func Summarize(results []FileResult) Summary {
	var s Summary
	for i := range results {
		r := &results[i]
		s.Files++
		if r.Failed() {
			s.Failed++
		} else {
			s.Rules += len(r.Model.Rules)
		}
		s.Errors += r.Bag.Count(diag.SevError)
		s.Warnings += r.Bag.Count(diag.SevWarning)
		s.Infos += r.Bag.Count(diag.SevInfo)
		s.Timings = s.Timings.Merge(r.Timings)
	}
	return s
}
