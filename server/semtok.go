package server

import (
	"strings"

	"github.com/lexcodex/wsls/whitespace/parse"
)

// semanticTokenTypes is the legend, in index order. The grammar has exactly
// one visual class worth painting: instructions.
var semanticTokenTypes = []string{"keyword"}

// encodeKeywordTokens emits one keyword token per top-level op node,
// delta-encoded as (deltaLine, deltaStartChar, length, type, modifiers)
// per the LSP semantic tokens wire format. Protocol tokens cannot span
// lines, so each token covers the instruction's first non-empty line
// segment; instructions made only of newlines produce no token.
func encodeKeywordTokens(tree *parse.Tree) []uint32 {
	data := make([]uint32, 0)
	var prevLine, prevChar uint32
	root := tree.RootNode()
	for i := 0; i < root.ChildCount(); i++ {
		node := root.Child(i)
		if !strings.HasPrefix(node.Kind(), "op") {
			continue
		}
		line, char, length, ok := firstLineSegment(tree, node)
		if !ok {
			continue
		}
		deltaLine := line - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}
		data = append(data, deltaLine, deltaChar, length, 0, 0)
		prevLine, prevChar = line, char
	}
	return data
}

// firstLineSegment finds the first run of non-newline bytes inside the
// node's span and returns its line, start column, and byte length.
func firstLineSegment(tree *parse.Tree, node *parse.Node) (line, char, length uint32, ok bool) {
	text := tree.Text(node)
	line = node.StartPoint().Row
	char = node.StartPoint().Column
	i := 0
	for ; i < len(text) && text[i] == '\n'; i++ {
		line++
		char = 0
	}
	if i == len(text) {
		return 0, 0, 0, false
	}
	end := strings.IndexByte(text[i:], '\n')
	if end < 0 {
		end = len(text) - i
	}
	return line, char, uint32(end), true
}
