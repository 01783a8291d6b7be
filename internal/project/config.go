package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"grammarworks/internal/diag"
)

type Config struct {
	Check  CheckConfig  `toml:"check"`
	LSP    LSPConfig    `toml:"lsp"`
	Output OutputConfig `toml:"output"`
	Files  FilesConfig  `toml:"files"`
}

type CheckConfig struct {
	GrammarDecl       bool   `toml:"grammar_decl"`
	Duplicates        bool   `toml:"duplicates"`
	LeftRecursion     bool   `toml:"left_recursion"`
	Groups            bool   `toml:"groups"`
	EmptyAlternatives bool   `toml:"empty_alternatives"`
	Unterminated      bool   `toml:"unterminated"`
	MinSeverity       string `toml:"min_severity"`
	MaxDiagnostics    int    `toml:"max_diagnostics"`
}

type LSPConfig struct {
	DebounceMS int  `toml:"debounce_ms"`
	Trace      bool `toml:"trace"`
}

type OutputConfig struct {
	Color string `toml:"color"` // auto, on, off
}

type FilesConfig struct {
	Extensions []string `toml:"extensions"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Check: CheckConfig{
			GrammarDecl:       true,
			Duplicates:        true,
			LeftRecursion:     true,
			Groups:            true,
			EmptyAlternatives: true,
			Unterminated:      true,
			MinSeverity:       "info",
			MaxDiagnostics:    100,
		},
		LSP:    LSPConfig{DebounceMS: 300},
		Output: OutputConfig{Color: "auto"},
		Files:  FilesConfig{Extensions: []string{".g", ".g3", ".g4"}},
	}
}

// Load decodes path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("files", "extensions") && len(cfg.Files.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [files].extensions must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadNearest loads the configuration found by walking up from startDir, or
// the defaults when there is none. The returned path is "" in that case.
func LoadNearest(startDir string) (Config, string, error) {
	path, err := FindConfig(startDir)
	if errors.Is(err, ErrNoConfig) {
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func (c Config) Validate() error {
	if _, err := diag.ParseSeverity(c.Check.MinSeverity); err != nil {
		return fmt.Errorf("[check].min_severity: %w", err)
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics)
	}
	if c.LSP.DebounceMS < 0 {
		return fmt.Errorf("[lsp].debounce_ms must be >= 0, got %d", c.LSP.DebounceMS)
	}
	if !slices.Contains([]string{"auto", "on", "off"}, c.Output.Color) {
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[files].extensions: %q must start with '.'", ext)
		}
	}
	return nil
}

// MinSeverity returns the parsed [check].min_severity.
func (c Config) MinSeverity() diag.Severity {
	sev, err := diag.ParseSeverity(c.Check.MinSeverity)
	if err != nil {
		return diag.SevInfo
	}
	return sev
}

// HasGrammarExt reports whether path has one of the configured extensions.
func (c Config) HasGrammarExt(path string) bool {
	return slices.Contains(c.Files.Extensions, filepath.Ext(path))
}

// WriteDefault creates dir/grammarworks.toml with the default configuration.
// An existing file is never overwritten.
func WriteDefault(dir string) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(Default()); err != nil {
		return "", fmt.Errorf("failed to encode TOML: %w", err)
	}
	path := filepath.Join(dir, ConfigFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
