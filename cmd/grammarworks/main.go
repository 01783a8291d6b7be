package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grammarworks/internal/prof"
	"grammarworks/internal/project"
	"grammarworks/internal/version"
)

// errReported means diagnostics were already printed; main only sets the exit status.
var errReported = errors.New("diagnostics reported")

// newRootCmd builds the command tree. Tests build a fresh tree per run so
// flag state does not leak between them. The returned func stops profiling
// and must run after Execute, whatever it returned.
func newRootCmd() (*cobra.Command, func()) {
	root := &cobra.Command{
		Use:   "grammarworks",
		Short: "Grammar editor toolkit: tokenizer, rule analyzer and language server",
		Long: `grammarworks tokenizes ANTLR-style grammar files, recovers their rules,
alternatives and groups, reports lint diagnostics and serves them to editors over LSP`,
		SilenceUsage: true,
	}
	// Устанавливаем версию для автоматического флага --version
	root.Version = version.Version

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newRuleCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newLSPCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	root.PersistentFlags().String("config", "", "path to "+project.ConfigFileName+" (default: nearest one up from the working directory)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")

	var session *prof.Session
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		opts, err := readProfileFlags(cmd)
		if err != nil || !opts.Enabled() {
			return err
		}
		session, err = prof.Start(opts)
		return err
	}
	stop := func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}
	return root, stop
}

func readProfileFlags(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// main runs the root command with a context cancelled on interrupt.
// Any returned error exits with status 1.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	root, stopProfiling := newRootCmd()
	err := root.ExecuteContext(ctx)
	stopProfiling()
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfig resolves the project configuration and applies the global flags
// over it. Flags win only when set explicitly.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg project.Config
	if path != "" {
		cfg, err = project.Load(path)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return project.Config{}, wdErr
		}
		cfg, _, err = project.LoadNearest(wd)
	}
	if err != nil {
		return project.Config{}, err
	}

	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return project.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n < 0 {
			return project.Config{}, fmt.Errorf("--max-diagnostics must be >= 0, got %d", n)
		}
		cfg.Check.MaxDiagnostics = n
	}
	if flags.Changed("color") {
		mode, err := flags.GetString("color")
		if err != nil {
			return project.Config{}, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Output.Color = strings.ToLower(strings.TrimSpace(mode))
	}
	if err := cfg.Validate(); err != nil {
		return project.Config{}, err
	}
	return cfg, nil
}

// useColor decides coloring for output written to f.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && isTerminal(f)
	}
}

// stdoutFile returns cmd's output as *os.File when it is one, so color
// detection also works under redirected writers in tests.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func timings(cmd *cobra.Command) bool {
	t, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && t
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
