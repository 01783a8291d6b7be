package lsp

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const exprGrammar = "grammar Expr;\n" +
	"expr : expr '+' term\n" +
	"     | term\n" +
	"     ;\n" +
	"term : INT ;\n" +
	"INT : [0-9]+ ;\n"

func TestPublishDiagnosticsMapping(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := pathToURI(filepath.Join(t.TempDir(), "expr.g"))

	openDoc(t, s, uri, exprGrammar)
	msgs := drain(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	params := publishOf(t, msgs[0])
	if params.URI != uri {
		t.Fatalf("expected uri %q, got %q", uri, params.URI)
	}
	if params.Version == nil || *params.Version != 1 {
		t.Fatalf("unexpected version: %v", params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	got := params.Diagnostics[0]
	if got.Code != "GRM1003" || got.Severity != severityWarning {
		t.Fatalf("unexpected diagnostic: %+v", got)
	}
	if got.Range.Start != (position{Line: 1, Character: 0}) || got.Range.End != (position{Line: 1, Character: 4}) {
		t.Fatalf("unexpected range: %+v", got.Range)
	}
	if len(got.RelatedInformation) != 1 || got.RelatedInformation[0].Location.Range.Start.Character != 7 {
		t.Fatalf("unexpected related information: %+v", got.RelatedInformation)
	}

	m, errs := s.document(uri).current()
	if !errs.HasErrors(m.RuleByName("expr")) {
		t.Fatal("expected the rule overlay to carry the warning")
	}
}

func TestIncrementalChangeRepublishes(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := "file:///tmp/expr.g"
	doc := openDoc(t, s, uri, exprGrammar)
	drain(t, &out)

	// "expr '+' term" -> "term '+' term": левая рекурсия исчезает
	call(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 1, Character: 7}, End: position{Line: 1, Character: 11}},
			Text:  "term",
		}},
	})
	if m := doc.model(); !m.RuleByName("expr").HasLeftRecursion() {
		t.Fatal("model must not change before the debounced analysis runs")
	}
	s.flush(doc)

	params := publishOf(t, drain(t, &out)[0])
	if len(params.Diagnostics) != 0 || *params.Version != 2 {
		t.Fatalf("expected clean version 2, got %+v", params)
	}
	if doc.model().RuleByName("expr").HasLeftRecursion() {
		t.Fatal("expected the new model to be published")
	}
}

const flatExprGrammar = "grammar Expr;\n" +
	"expr : term '+' term\n" +
	"     | term\n" +
	"     ;\n" +
	"term : INT ;\n" +
	"INT : [0-9]+ ;\n"

func hoverAt(t *testing.T, s *Server, out *bytes.Buffer, uri string, pos position) hover {
	t.Helper()
	call(t, s, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     pos,
	})
	msgs := drain(t, out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 response, got %d", len(msgs))
	}
	var h hover
	resultOf(t, msgs[0], &h)
	return h
}

func TestHoverFollowsRepublishedModel(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := "file:///tmp/expr.g"
	doc := openDoc(t, s, uri, exprGrammar)
	drain(t, &out)

	onExpr := position{Line: 1, Character: 2}
	if h := hoverAt(t, s, &out, uri, onExpr); !strings.Contains(h.Contents.Value, "- rule \"expr\" is directly left-recursive") {
		t.Fatalf("hover must list the warning:\n%s", h.Contents.Value)
	}

	call(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{Text: flatExprGrammar}},
	})
	s.flush(doc)
	drain(t, &out)

	h := hoverAt(t, s, &out, uri, onExpr)
	if strings.Contains(h.Contents.Value, "left-recursive") {
		t.Fatalf("hover must not carry errors of the old model:\n%s", h.Contents.Value)
	}
}

func TestOverlayMatchesPublishedModel(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	doc := openDoc(t, s, "file:///tmp/expr.g", exprGrammar)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			m, errs := doc.current()
			rule := m.RuleByName("expr")
			if rule.HasLeftRecursion() != errs.HasErrors(rule) {
				t.Errorf("overlay does not belong to the published model")
				return
			}
		}
	}()

	texts := []string{flatExprGrammar, exprGrammar}
	for i := range 50 {
		doc.replace(texts[i%2])
		j := doc.request(s.debounce, "test", func(*job) {})
		doc.stopTimer()
		s.analyze(doc, j)
	}
	close(done)
	wg.Wait()
}

func TestSupersededAnalysisIsDropped(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := "file:///tmp/a.g"
	doc := openDoc(t, s, uri, "grammar A;\na : 'x' ;\n")
	drain(t, &out)

	stale := doc.request(s.debounce, "test", func(*job) {})
	doc.replace("grammar A;\na : 'x' ;\nb : 'y' ;\n")
	fresh := doc.request(s.debounce, "test", func(*job) {})
	doc.stopTimer()

	s.analyze(doc, fresh)
	s.analyze(doc, stale)

	if n := len(doc.model().Rules); n != 2 {
		t.Fatalf("expected the newest model with 2 rules, got %d", n)
	}
	if msgs := drain(t, &out); len(msgs) != 1 {
		t.Fatalf("expected a single publish, got %d", len(msgs))
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := "file:///tmp/expr.g"
	openDoc(t, s, uri, exprGrammar)
	drain(t, &out)

	call(t, s, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uri}})
	params := publishOf(t, drain(t, &out)[0])
	if params.URI != uri || len(params.Diagnostics) != 0 {
		t.Fatalf("expected empty publish, got %+v", params)
	}
	if s.document(uri) != nil {
		t.Fatal("document must be forgotten")
	}
}

func TestRunLifecycle(t *testing.T) {
	var in bytes.Buffer
	for _, m := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///tmp"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"textDocument/unknown","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		if err := writeMessage(&in, []byte(m)); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	s := NewServer(&in, &out, ServerOptions{})
	err := s.Run(t.Context())
	if !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}

	msgs := drain(t, &out)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(msgs))
	}
	var init initializeResult
	resultOf(t, msgs[0], &init)
	if !init.Capabilities.FoldingRangeProvider || init.ServerInfo.Name != "grammarworks" {
		t.Fatalf("unexpected capabilities: %+v", init)
	}
	if msgs[1].Error == nil || msgs[1].Error.Code != codeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", msgs[1])
	}
	if string(msgs[2].ID) != "3" {
		t.Fatalf("unexpected shutdown response: %+v", msgs[2])
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var in bytes.Buffer
	if err := writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`)); err != nil {
		t.Fatal(err)
	}
	s := NewServer(&in, &bytes.Buffer{}, ServerOptions{})
	if err := s.Run(t.Context()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
}

func TestDidChangeConfiguration(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(&out)
	uri := "file:///tmp/expr.g"
	doc := openDoc(t, s, uri, exprGrammar)
	drain(t, &out)

	settings := json.RawMessage(`{"grammarworks":{"lsp":{"trace":true},"check":{"leftRecursion":false}}}`)
	call(t, s, "workspace/didChangeConfiguration", didChangeConfigurationParams{Settings: settings})
	if !s.currentTrace() || s.currentCheckOptions().LeftRecursion {
		t.Fatal("settings not applied")
	}
	s.flush(doc)
	params := publishOf(t, drain(t, &out)[0])
	for _, d := range params.Diagnostics {
		if strings.HasPrefix(d.Code, "GRM1003") {
			t.Fatalf("left recursion check should be disabled: %+v", d)
		}
	}
}
