package driver

import (
	"fmt"

	"grammarworks/internal/analysis"
	"grammarworks/internal/check"
	"grammarworks/internal/diag"
	"grammarworks/internal/observ"
	"grammarworks/internal/project"
	"grammarworks/internal/source"
)

// FileResult is the outcome of checking one grammar.
type FileResult struct {
	Path    string
	File    *source.File // nil when loading failed
	Model   *analysis.Model
	Bag     *diag.Bag
	Timings observ.Report
}

// Failed reports whether the file could not be loaded.
func (r *FileResult) Failed() bool { return r.File == nil }

// CheckOptions maps the [check] section of cfg to lint options.
func CheckOptions(cfg project.Config) check.Options {
	c := cfg.Check
	return check.Options{
		GrammarDecl:       c.GrammarDecl,
		Duplicates:        c.Duplicates,
		LeftRecursion:     c.LeftRecursion,
		Groups:            c.Groups,
		EmptyAlternatives: c.EmptyAlternatives,
		Unterminated:      c.Unterminated,
		MinSeverity:       cfg.MinSeverity(),
		MaxDiagnostics:    c.MaxDiagnostics,
	}
}

// AnalyzeFile loads path and runs analysis and checks on it.
func AnalyzeFile(path string, opts check.Options) (*FileResult, error) {
	file, err := source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return AnalyzeSource(file, opts), nil
}

// AnalyzeSource analyzes an already loaded file.
func AnalyzeSource(file *source.File, opts check.Options) *FileResult {
	m := analysis.Analyze(file.Content)
	timer := observ.NewTimer()
	var bag *diag.Bag
	timer.Measure("check", func() string {
		bag = check.Run(m, opts)
		return fmt.Sprintf("%d diagnostics", bag.Len())
	})
	return &FileResult{
		Path:    file.Path,
		File:    file,
		Model:   m,
		Bag:     bag,
		Timings: m.Timings.Merge(timer.Report()),
	}
}

func loadFailure(path string, err error, maxDiagnostics int) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, err.Error()))
	return FileResult{Path: path, Bag: bag}
}
