package server

import (
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/lexcodex/wsls/whitespace/parse"
)

// hover resolves the token under the cursor and renders it. A nil result
// means the cursor sits on structural padding or outside any token; the
// dispatcher replies with a null result so the client is not left waiting.
func (s *Server) hover(params protocol.HoverParams) (*Hover, error) {
	text, err := s.loader.Load(params.TextDocument)
	if err != nil {
		return nil, err
	}
	tree := parse.Tokenize(text)
	node := parse.NodeAt(tree, positionToPoint(params.Position))
	if node == nil {
		return nil, nil
	}
	var contents string
	switch node.Kind() {
	case "num":
		num, err := parse.DecodeNum(tree, node)
		if err != nil {
			return nil, fmt.Errorf("hover: %w", err)
		}
		contents = num.String()
	case "label":
		label, err := parse.DecodeLabel(tree, node)
		if err != nil {
			return nil, fmt.Errorf("hover: %w", err)
		}
		contents = fmt.Sprintf("%#v", label)
	default:
		contents = node.Kind()
	}
	r := nodeRange(node)
	return &Hover{Contents: contents, Range: &r}, nil
}

// documentHighlight colors one span per top-level item. The cursor position
// is ignored: children of the root are the program's instructions, and the
// kind mapping is a visual convention, not a data-flow analysis.
func (s *Server) documentHighlight(params protocol.TextDocumentPositionParams) ([]DocumentHighlight, error) {
	text, err := s.loader.Load(params.TextDocument)
	if err != nil {
		return nil, err
	}
	tree := parse.Tokenize(text)
	highlights := make([]DocumentHighlight, 0, tree.RootNode().ChildCount())
	cursor := tree.Walk()
	if !cursor.GoToFirstChild() {
		return highlights, nil
	}
	for {
		node := cursor.Node()
		highlights = append(highlights, DocumentHighlight{
			Range: nodeRange(node),
			Kind:  highlightKind(node.Kind()),
		})
		if !cursor.GoToNextSibling() {
			return highlights, nil
		}
	}
}

func highlightKind(kind string) DocumentHighlightKind {
	switch {
	case strings.HasPrefix(kind, "op"):
		return HighlightRead
	case kind == "num":
		return HighlightWrite
	default:
		return HighlightText
	}
}

// inlayHint annotates every flow-control instruction with its compact
// rendering, placed at the instruction's end. The visible range is ignored;
// hints cover the whole document.
func (s *Server) inlayHint(params InlayHintParams) ([]InlayHint, error) {
	text, err := s.loader.Load(params.TextDocument)
	if err != nil {
		return nil, err
	}
	ast, err := parse.Parse(text)
	if err != nil {
		return nil, err
	}
	flows := ast.FlowControlOps()
	hints := make([]InlayHint, 0, len(flows))
	for _, flow := range flows {
		hints = append(hints, InlayHint{
			Label:    flow.Op.Compact(),
			Kind:     InlayHintType,
			Position: pointToPosition(flow.Node.EndPoint()),
		})
	}
	return hints, nil
}

// semanticTokens emits one keyword token per top-level instruction.
func (s *Server) semanticTokens(params SemanticTokensParams) (*SemanticTokens, error) {
	text, err := s.loader.Load(params.TextDocument)
	if err != nil {
		return nil, err
	}
	tree := parse.Tokenize(text)
	return &SemanticTokens{Data: encodeKeywordTokens(tree)}, nil
}
