// Package server implements the whitespace language server: a serial LSP
// dispatcher over Content-Length framed JSON-RPC answering hover, document
// highlight, inlay hint, and semantic token queries.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
)

const (
	serverName    = "wsls"
	serverVersion = "0.2.0"
)

// Options tunes the server. The zero value is usable.
type Options struct {
	// MaxFileSize bounds document reads; DefaultMaxFileSize when zero.
	MaxFileSize int64
}

// Server answers LSP requests for whitespace documents. Handlers run to
// completion one at a time in arrival order; there is no shared mutable
// document state, so responses are emitted in request order and no locking
// is needed around the core.
type Server struct {
	logger *log.Logger
	loader *Loader

	shutdown bool
	exitOnce sync.Once
	exited   chan struct{}
}

// New builds a server. A nil logger falls back to the default logger.
func New(opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		loader: &Loader{MaxFileSize: opts.MaxFileSize},
		exited: make(chan struct{}),
	}
}

// Capabilities is the record advertised on initialize: full-document sync,
// hover, document highlights, inlay hints, and keyword semantic tokens.
func Capabilities() ServerCapabilities {
	return ServerCapabilities{
		TextDocumentSync:          TextDocumentSyncFull,
		HoverProvider:             true,
		DocumentHighlightProvider: true,
		InlayHintProvider:         true,
		SemanticTokensProvider: SemanticTokensOptions{
			Legend: SemanticTokensLegend{
				TokenTypes:     semanticTokenTypes,
				TokenModifiers: []string{},
			},
			Full: true,
		},
	}
}

// Run serves one client over the duplex stream and blocks until the client
// sends exit, disconnects, or the context is canceled. A clean
// shutdown-then-exit sequence returns nil; anything else is an error.
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, s)
	defer conn.Close()

	s.logger.Printf("serving")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.exited:
		if !s.shutdown {
			return errors.New("exit received before shutdown")
		}
		s.logger.Printf("shutting down")
		return nil
	case <-conn.DisconnectNotify():
		if s.shutdown {
			s.logger.Printf("client disconnected after shutdown")
			return nil
		}
		return errors.New("client disconnected")
	}
}

// Handle implements jsonrpc2.Handler. It is invoked synchronously from the
// connection's read loop, which is what keeps request handling serial.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, err := s.dispatch(req)
	if req.Notif {
		if err != nil {
			s.logger.Printf("notification %s: %v", req.Method, err)
		}
		return
	}
	if err != nil {
		var rpcErr *jsonrpc2.Error
		if !errors.As(err, &rpcErr) {
			rpcErr = &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		s.logger.Printf("request %s (%s): %s", req.Method, req.ID, rpcErr.Message)
		if err := conn.ReplyWithError(ctx, req.ID, rpcErr); err != nil {
			s.logger.Printf("reply %s: %v", req.ID, err)
		}
		return
	}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		s.logger.Printf("reply %s: %v", req.ID, err)
	}
}

func (s *Server) dispatch(req *jsonrpc2.Request) (interface{}, error) {
	switch req.Method {
	case "initialize":
		var params protocol.InitializeParams
		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, invalidParams(err)
			}
		}
		if params.ClientInfo != nil {
			s.logger.Printf("initialize from %s", params.ClientInfo.Name)
		}
		return InitializeResult{
			Capabilities: Capabilities(),
			ServerInfo:   &ServerInfo{Name: serverName, Version: serverVersion},
		}, nil

	case "initialized":
		return nil, nil

	case "shutdown":
		s.shutdown = true
		return nil, nil

	case "exit":
		s.exitOnce.Do(func() { close(s.exited) })
		return nil, nil

	case "textDocument/hover":
		var params protocol.HoverParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.hover(params)

	case "textDocument/documentHighlight":
		var params protocol.TextDocumentPositionParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.documentHighlight(params)

	case "textDocument/inlayHint":
		var params InlayHintParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.inlayHint(params)

	case "textDocument/semanticTokens/full":
		var params SemanticTokensParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.semanticTokens(params)

	default:
		if req.Notif {
			s.logger.Printf("ignoring notification %s", req.Method)
			return nil, nil
		}
		s.logger.Printf("unsupported request %s", req.Method)
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	}
}

func decodeParams(req *jsonrpc2.Request, v interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return invalidParams(err)
	}
	return nil
}

func invalidParams(err error) error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
}

// Stdio is the standard transport: protocol frames on stdin/stdout, leaving
// stderr for logging.
func Stdio() io.ReadWriteCloser {
	return &stdioReadWriteCloser{reader: os.Stdin, writer: os.Stdout}
}

type stdioReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.writer.Write(p) }
func (s *stdioReadWriteCloser) Close() error {
	_ = s.reader.Close()
	return s.writer.Close()
}
