package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

type clientHandler struct{}

func (clientHandler) Handle(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) {}

// startServer wires a server and a client connection over an in-memory
// duplex and returns the client side plus the server's Run result channel.
func startServer(t *testing.T) (*jsonrpc2.Conn, chan error) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	s := New(Options{}, log.New(io.Discard, "", 0))

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), serverSide) }()

	stream := jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{})
	client := jsonrpc2.NewConn(context.Background(), stream, clientHandler{})
	t.Cleanup(func() { _ = client.Close() })
	return client, done
}

func TestInitializeCapabilities(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result json.RawMessage
	err := client.Call(ctx, "initialize", protocol.InitializeParams{}, &result)
	require.NoError(t, err)

	var decoded struct {
		Capabilities struct {
			TextDocumentSync          int  `json:"textDocumentSync"`
			HoverProvider             bool `json:"hoverProvider"`
			DocumentHighlightProvider bool `json:"documentHighlightProvider"`
			InlayHintProvider         bool `json:"inlayHintProvider"`
			DefinitionProvider        *bool `json:"definitionProvider"`
			SemanticTokensProvider    struct {
				Legend struct {
					TokenTypes     []string `json:"tokenTypes"`
					TokenModifiers []string `json:"tokenModifiers"`
				} `json:"legend"`
				Full  bool             `json:"full"`
				Range *json.RawMessage `json:"range"`
			} `json:"semanticTokensProvider"`
		} `json:"capabilities"`
		ServerInfo struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(result, &decoded))

	caps := decoded.Capabilities
	assert.Equal(t, TextDocumentSyncFull, caps.TextDocumentSync)
	assert.True(t, caps.HoverProvider)
	assert.True(t, caps.DocumentHighlightProvider)
	assert.True(t, caps.InlayHintProvider)
	assert.Nil(t, caps.DefinitionProvider)
	assert.Equal(t, []string{"keyword"}, caps.SemanticTokensProvider.Legend.TokenTypes)
	assert.Empty(t, caps.SemanticTokensProvider.Legend.TokenModifiers)
	assert.True(t, caps.SemanticTokensProvider.Full)
	assert.Nil(t, caps.SemanticTokensProvider.Range)
	assert.Equal(t, "wsls", decoded.ServerInfo.Name)
}

func TestUnknownMethodGetsError(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result json.RawMessage
	err := client.Call(ctx, "textDocument/definition", struct{}{}, &result)
	require.Error(t, err)
	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)

	// The server keeps serving after the rejected request.
	err = client.Call(ctx, "initialize", protocol.InitializeParams{}, &result)
	assert.NoError(t, err)
}

func TestHoverOverTheWire(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := writeDoc(t, "   \t\t\n\n")
	params := protocol.HoverParams{
		TextDocumentPositionParams: positionParams(doc, 0, 2),
	}
	var hover *Hover
	require.NoError(t, client.Call(ctx, "textDocument/hover", params, &hover))
	require.NotNil(t, hover)
	assert.Equal(t, "3", hover.Contents)

	// Hover over nothing yields an explicit null result, not silence.
	var empty json.RawMessage
	params.Position = protocol.Position{Line: 5, Character: 0}
	require.NoError(t, client.Call(ctx, "textDocument/hover", params, &empty))
	assert.Equal(t, "null", string(empty))
}

func TestResponsesArriveInOrder(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc := writeDoc(t, flowProgram)
	for i := 0; i < 8; i++ {
		var hints []InlayHint
		err := client.Call(ctx, "textDocument/inlayHint", InlayHintParams{TextDocument: doc}, &hints)
		require.NoError(t, err)
		require.Len(t, hints, 4)
	}
}

func TestShutdownExitSequence(t *testing.T) {
	client, done := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result json.RawMessage
	require.NoError(t, client.Call(ctx, "shutdown", nil, &result))
	assert.Equal(t, "null", string(result))
	require.NoError(t, client.Notify(ctx, "exit", nil))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}

func TestExitWithoutShutdownIsAnError(t *testing.T) {
	client, done := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Notify(ctx, "exit", nil))
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}

func TestCancelNotificationIsIgnored(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Notify(ctx, "$/cancelRequest", map[string]int{"id": 1}))

	var result json.RawMessage
	assert.NoError(t, client.Call(ctx, "initialize", protocol.InitializeParams{}, &result))
}
