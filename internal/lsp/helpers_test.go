package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"grammarworks/internal/check"
)

func newTestServer(out *bytes.Buffer) *Server {
	return NewServer(bytes.NewReader(nil), out, ServerOptions{
		Debounce: time.Hour,
		Check:    check.DefaultOptions(),
	})
}

func call(t *testing.T, s *Server, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal %s: %v", method, err)
	}
	msg := &rpcMessage{JSONRPC: "2.0", ID: json.RawMessage("1"), Method: method, Params: payload}
	if err := s.handleMessage(msg); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func openDoc(t *testing.T, s *Server, uri, text string) *document {
	t.Helper()
	call(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, LanguageID: "antlr", Version: 1, Text: text},
	})
	doc := s.document(uri)
	if doc == nil {
		t.Fatalf("document %s not registered", uri)
	}
	s.flush(doc)
	return doc
}

// drain decodes every framed message written so far and resets the buffer.
func drain(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out.Bytes()))
	out.Reset()
	var msgs []rpcMessage
	for {
		payload, err := readMessage(r)
		if err != nil {
			break
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func publishOf(t *testing.T, msg rpcMessage) publishDiagnosticsParams {
	t.Helper()
	if msg.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected publishDiagnostics, got %q", msg.Method)
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	return params
}

func resultOf(t *testing.T, msg rpcMessage, v any) {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("unexpected error response: %+v", msg.Error)
	}
	if err := json.Unmarshal(msg.Result, v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}
