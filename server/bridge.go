package server

import (
	"go.lsp.dev/protocol"

	"github.com/lexcodex/wsls/whitespace/parse"
)

// Parser points and protocol positions use the same zero-based coordinates,
// with one caveat: the protocol specifies UTF-16 code units on the character
// axis while the parser reports UTF-8 byte columns. The byte column is used
// verbatim because the language is ASCII whitespace, where bytes, code
// points, and UTF-16 units coincide for every valid program.

func pointToPosition(p parse.Point) protocol.Position {
	return protocol.Position{Line: p.Row, Character: p.Column}
}

func positionToPoint(p protocol.Position) parse.Point {
	return parse.Point{Row: p.Line, Column: p.Character}
}

func nodeRange(n *parse.Node) protocol.Range {
	return protocol.Range{
		Start: pointToPosition(n.StartPoint()),
		End:   pointToPosition(n.EndPoint()),
	}
}
