package server

import "go.lsp.dev/protocol"

// go.lsp.dev/protocol stops short of the LSP 3.17 surface this server
// speaks, so the inlay-hint types and the exact capability record shapes are
// declared here. Position and Range values come from the library so both
// halves marshal identically.

// TextDocumentSyncFull ships the whole document body on every change.
const TextDocumentSyncFull = 1

// ServerInfo identifies the server in the initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SemanticTokensLegend lists the token types and modifiers the server
// encodes against, in index order.
type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// SemanticTokensOptions advertises full-document tokenization. Range
// tokenization is unsupported and therefore absent.
type SemanticTokensOptions struct {
	Legend SemanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
}

// ServerCapabilities is the capability record sent on initialize.
type ServerCapabilities struct {
	TextDocumentSync          int                   `json:"textDocumentSync"`
	HoverProvider             bool                  `json:"hoverProvider"`
	DocumentHighlightProvider bool                  `json:"documentHighlightProvider"`
	InlayHintProvider         bool                  `json:"inlayHintProvider"`
	SemanticTokensProvider    SemanticTokensOptions `json:"semanticTokensProvider"`
}

// InitializeResult is the payload answering the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// Hover carries the plain-string form of hover contents. The scalar string
// is the legacy MarkedString encoding, kept because every supported token
// renders as a single line of text.
type Hover struct {
	Contents string          `json:"contents"`
	Range    *protocol.Range `json:"range,omitempty"`
}

// DocumentHighlightKind colors a highlight span.
type DocumentHighlightKind int

const (
	HighlightText  DocumentHighlightKind = 1
	HighlightRead  DocumentHighlightKind = 2
	HighlightWrite DocumentHighlightKind = 3
)

// DocumentHighlight is one colored span of the document.
type DocumentHighlight struct {
	Range protocol.Range        `json:"range"`
	Kind  DocumentHighlightKind `json:"kind,omitempty"`
}

// InlayHintKind classifies an inlay hint.
type InlayHintKind int

const (
	InlayHintType      InlayHintKind = 1
	InlayHintParameter InlayHintKind = 2
)

// InlayHint is a label rendered inline by the editor. Optional 3.17 fields
// the server never populates are left out entirely.
type InlayHint struct {
	Position protocol.Position `json:"position"`
	Label    string            `json:"label"`
	Kind     InlayHintKind     `json:"kind,omitempty"`
}

// InlayHintParams asks for hints covering a visible range.
type InlayHintParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

// SemanticTokensParams asks for full-document semantic tokens.
type SemanticTokensParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// SemanticTokens is the delta-encoded token stream, five integers per token.
type SemanticTokens struct {
	Data []uint32 `json:"data"`
}
