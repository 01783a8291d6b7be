package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grammarworks/internal/project"
)

const exprGrammar = "../../testdata/grammars/expr.g"

// execute runs a fresh command tree with a default config in a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath, err := project.WriteDefault(t.TempDir())
	if err != nil {
		t.Fatalf("write config: %v", err)
	}
	root, stop := newRootCmd()
	defer stop()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath, "--color", "off"}, args...))
	err = root.Execute()
	return out.String(), err
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeAuto, nil) {
		t.Fatalf("auto mode without a terminal must not use the TUI")
	}
}

func TestTokenizeCommand(t *testing.T) {
	out, err := execute(t, "tokenize", "--format", "json", exprGrammar)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(toks) == 0 || toks[0]["text"] != "grammar" {
		t.Fatalf("unexpected tokens: %v", toks)
	}

	if _, err := execute(t, "tokenize", "--dialect", "odd", exprGrammar); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", exprGrammar)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{"grammar Expr", "block options", "group \"Expressions\"", "left-recursive"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRuleCommandSuggests(t *testing.T) {
	out, err := execute(t, "rule", exprGrammar, "stat")
	if err != nil {
		t.Fatalf("rule: %v", err)
	}
	// действие не входит в текст альтернативы
	if !strings.Contains(out, "1: expr ';'\n") {
		t.Fatalf("alternative not shown:\n%s", out)
	}

	_, err = execute(t, "rule", exprGrammar, "exp")
	if err == nil || !strings.Contains(err.Error(), "did you mean expr") {
		t.Fatalf("err = %v, want a suggestion", err)
	}
}

func TestRulesCommandKinds(t *testing.T) {
	out, err := execute(t, "rules", "--kind", "lexer", exprGrammar)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if !strings.Contains(out, "INT") || strings.Contains(out, "stat") {
		t.Fatalf("lexer filter failed:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "--ui", "off", exprGrammar)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "directly left-recursive") || !strings.Contains(out, "1 file(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	_, err = execute(t, "check", "--ui", "off", "--warnings-as-errors", exprGrammar)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
}

func TestCheckCommandShort(t *testing.T) {
	out, err := execute(t, "check", "--format", "short", exprGrammar)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	first, _, _ := strings.Cut(out, "\n")
	if !strings.HasPrefix(first, "WARNING GRM1003 ") ||
		!strings.HasSuffix(first, `expr.g:9:1 rule "expr" is directly left-recursive`) {
		t.Fatalf("unexpected first line %q in:\n%s", first, out)
	}
	if !strings.Contains(out, "expr.g:10:7 alternative starts with the rule itself") {
		t.Fatalf("missing note in:\n%s", out)
	}
	if strings.Contains(out, "file(s)") {
		t.Fatalf("short format must not print the summary:\n%s", out)
	}

	if _, err := execute(t, "check", "--format", "xml", exprGrammar); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	src := "grammar T;\nr : r 'x' | 'y' ;\n"
	if err := os.WriteFile(filepath.Join(dir, "t.g"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("r : ;"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "check", "--format", "json", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var payload struct {
		Files []struct {
			Path  string `json:"path"`
			Count int    `json:"count"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(payload.Files) != 1 || payload.Files[0].Count != 1 {
		t.Fatalf("files = %+v", payload.Files)
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "grammars")
	if _, err := execute(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := project.Load(filepath.Join(dir, project.ConfigFileName)); err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if _, err := execute(t, "init", dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init: %v", err)
	}
}
