package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.fur.dev/pkg/tt"
)

const testURI = lsp.DocumentURI("file:///test.fur")

type testClient struct {
	diags chan lsp.PublishDiagnosticsParams
}

func (c *testClient) Handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}
	var params lsp.PublishDiagnosticsParams
	if json.Unmarshal(*req.Params, &params) == nil {
		c.diags <- params
	}
}

func (c *testClient) nextDiags(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-c.diags:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		panic("unreachable")
	}
}

func setup(t *testing.T) (*jsonrpc2.Conn, *testClient) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	serverEnd, clientEnd := net.Pipe()
	jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverEnd, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	client := &testClient{make(chan lsp.PublishDiagnosticsParams, 10)}
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientEnd, jsonrpc2.VSCodeObjectCodec{}),
		client)
	t.Cleanup(func() { conn.Close() })
	return conn, client
}

func open(t *testing.T, conn *jsonrpc2.Conn, text string) {
	t.Helper()
	err := conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{TextDocument: lsp.TextDocumentItem{
			URI: testURI, LanguageID: "fur", Text: text}})
	if err != nil {
		t.Fatal(err)
	}
}

func TestInitialize(t *testing.T) {
	conn, _ := setup(t)
	var result lsp.InitializeResult
	err := conn.Call(context.Background(), "initialize", lsp.InitializeParams{}, &result)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Capabilities.HoverProvider {
		t.Errorf("hover is not advertised")
	}
	if result.Capabilities.CompletionProvider == nil {
		t.Errorf("completion is not advertised")
	}
	if sync := result.Capabilities.TextDocumentSync; sync == nil ||
		sync.Options == nil || sync.Options.Change != lsp.TDSKFull {
		t.Errorf("got text document sync %v, want full", sync)
	}
}

func pos(line, char int) lsp.Position { return lsp.Position{Line: line, Character: char} }

func rng(l1, c1, l2, c2 int) lsp.Range { return lsp.Range{Start: pos(l1, c1), End: pos(l2, c2)} }

func TestDiagnostics(t *testing.T) {
	conn, client := setup(t)

	open(t, conn, "1 + 2\nx\n# comment\n(1\n5 : Trivial\n")
	want := []lsp.Diagnostic{
		{Range: rng(1, 0, 1, 1), Severity: lsp.Error, Source: "fur",
			Message: "not found: x"},
		{Range: rng(3, 2, 3, 2), Severity: lsp.Error, Source: "fur",
			Message: "should be ')'"},
		{Range: rng(4, 0, 4, 11), Severity: lsp.Error, Source: "fur",
			Message: "type mismatch: expected Trivial, got Int"},
	}
	got := client.nextDiags(t)
	if got.URI != testURI {
		t.Errorf("got URI %v", got.URI)
	}
	if diff := cmp.Diff(want, got.Diagnostics); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	err := conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "sole : Trivial"}},
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := client.nextDiags(t); len(got.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v after fixing, want none", got.Diagnostics)
	}
}

type hoverResult struct {
	Contents []struct {
		Language string `json:"language"`
		Value    string `json:"value"`
	} `json:"contents"`
	Range *lsp.Range `json:"range"`
}

func TestHover(t *testing.T) {
	conn, client := setup(t)
	open(t, conn, "1 + 2\n# comment\nU(3)\nx\n")
	client.nextDiags(t)

	hover := func(p lsp.Position) *hoverResult {
		var result *hoverResult
		err := conn.Call(context.Background(), "textDocument/hover",
			lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
				Position:     p}, &result)
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	r := hover(pos(0, 2))
	if r == nil || len(r.Contents) != 1 || r.Contents[0].Value != "3 : Int" {
		t.Errorf("hover on line 0 -> %+v, want 3 : Int", r)
	} else if diff := cmp.Diff(&lsp.Range{Start: pos(0, 0), End: pos(0, 5)}, r.Range); diff != "" {
		t.Errorf("hover range (-want +got):\n%s", diff)
	}
	if r := hover(pos(2, 4)); r == nil || r.Contents[0].Value != "U(3) : U(4)" {
		t.Errorf("hover on line 2 -> %+v, want U(3) : U(4)", r)
	}
	// Comments and ill-typed inputs have no hover.
	if r := hover(pos(1, 3)); r != nil {
		t.Errorf("hover on comment -> %+v, want nil", r)
	}
	if r := hover(pos(3, 0)); r != nil {
		t.Errorf("hover on ill-typed input -> %+v, want nil", r)
	}
}

func TestCompletion(t *testing.T) {
	conn, client := setup(t)
	open(t, conn, "1 : Tr\n")
	client.nextDiags(t)

	var items []lsp.CompletionItem
	err := conn.Call(context.Background(), "textDocument/completion",
		lsp.CompletionParams{TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     pos(0, 6)}}, &items)
	if err != nil {
		t.Fatal(err)
	}
	want := []lsp.CompletionItem{{
		Label: "Trivial", Kind: lsp.CIKKeyword,
		TextEdit: &lsp.TextEdit{Range: rng(0, 4, 0, 6), NewText: "Trivial"},
	}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("completion (-want +got):\n%s", diff)
	}
}

func TestUnknownMethod(t *testing.T) {
	conn, _ := setup(t)
	err := conn.Call(context.Background(), "textDocument/rename", struct{}{}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestShutdownAndExit(t *testing.T) {
	conn, _ := setup(t)
	if err := conn.Call(context.Background(), "shutdown", nil, nil); err != nil {
		t.Errorf("shutdown returns error %v", err)
	}
	conn.Notify(context.Background(), "exit", nil)
	select {
	case <-conn.DisconnectNotify():
	case <-time.After(5 * time.Second):
		t.Errorf("server did not disconnect after exit")
	}
}

var walkTestString = "a\nb\r\nλ𝄞c"

func TestPositionConversion(t *testing.T) {
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx), tt.Table{
		tt.Args(walkTestString, 0).Rets(pos(0, 0)),
		tt.Args(walkTestString, 2).Rets(pos(1, 0)),
		tt.Args(walkTestString, 5).Rets(pos(2, 0)),
		// λ is 2 bytes and 1 UTF-16 unit; 𝄞 is 4 bytes and 2 UTF-16 units.
		tt.Args(walkTestString, 7).Rets(pos(2, 1)),
		tt.Args(walkTestString, 11).Rets(pos(2, 3)),
		tt.Args(walkTestString, len(walkTestString)).Rets(pos(2, 4)),
	})
	tt.Test(t, tt.Fn("lspPositionToIdx", lspPositionToIdx), tt.Table{
		tt.Args(walkTestString, pos(0, 0)).Rets(0),
		tt.Args(walkTestString, pos(1, 1)).Rets(3),
		tt.Args(walkTestString, pos(2, 3)).Rets(11),
		tt.Args(walkTestString, pos(5, 0)).Rets(len(walkTestString)),
	})
}
