// Package parse builds concrete syntax trees and an instruction-level view
// of whitespace programs. The tokenizer is total: any input yields a tree,
// with malformed stretches represented as ERROR or recovered num nodes. Node
// spans are byte offsets into exactly the text passed in.
package parse

import (
	"fmt"

	"github.com/lexcodex/wsls/whitespace/tokens"
)

// Tokenize scans the text into a concrete syntax tree. It never fails;
// undecodable input is kept in the tree as ERROR nodes.
func Tokenize(text string) *Tree {
	l := &lexer{src: text}
	root := &Node{kind: "source_file"}
	for {
		l.skipComments(root)
		if l.eof() {
			break
		}
		if n := l.instruction(); n != nil {
			root.attach(n)
			continue
		}
		if n := l.bareNumber(); n != nil {
			root.attach(n)
			continue
		}
		n := l.errorNode()
		if n == nil {
			break
		}
		root.attach(n)
	}
	return &Tree{root: root, source: text}
}

// DecodeNum decodes a "num" node into its numeric value.
func DecodeNum(t *Tree, n *Node) (tokens.Num, error) {
	if n.Kind() != "num" {
		return tokens.Num{}, fmt.Errorf("parse: decode num on %q node", n.Kind())
	}
	return tokens.ParseNum(t.tokenRaw(n))
}

// DecodeLabel decodes a "label" node into its jump target.
func DecodeLabel(t *Tree, n *Node) (tokens.Label, error) {
	if n.Kind() != "label" {
		return tokens.Label{}, fmt.Errorf("parse: decode label on %q node", n.Kind())
	}
	return tokens.ParseLabel(t.tokenRaw(n))
}

var flowKinds = map[string]tokens.FlowControlKind{
	"op_mark": tokens.Mark,
	"op_call": tokens.Call,
	"op_jump": tokens.Jump,
	"op_jz":   tokens.Jz,
	"op_jn":   tokens.Jn,
	"op_ret":  tokens.Ret,
	"op_end":  tokens.End,
}

// Item is one top-level entry of a program: an instruction, a recovered
// bare literal, a comment, or an ERROR stretch. Flow is set for
// control-flow instructions.
type Item struct {
	Node *Node
	Flow *tokens.FlowControlOp
}

// FlowControlItem pairs a control-flow instruction with its syntax node.
type FlowControlItem struct {
	Node *Node
	Op   tokens.FlowControlOp
}

// Ast is the instruction-level view of a parsed program.
type Ast struct {
	tree  *Tree
	items []Item
}

// Parse tokenizes the text and classifies its top-level items. A label that
// fails to decode inside a well-formed flow instruction is an error.
func Parse(text string) (*Ast, error) {
	tree := Tokenize(text)
	root := tree.RootNode()
	items := make([]Item, 0, root.ChildCount())
	for i := 0; i < root.ChildCount(); i++ {
		child := root.Child(i)
		item := Item{Node: child}
		if kind, ok := flowKinds[child.Kind()]; ok {
			op := tokens.FlowControlOp{Kind: kind}
			if kind.HasLabel() {
				labelNode := findChild(child, "label")
				if labelNode == nil {
					return nil, fmt.Errorf("parse: %s instruction without label operand", child.Kind())
				}
				label, err := DecodeLabel(tree, labelNode)
				if err != nil {
					return nil, fmt.Errorf("parse: decode %s operand: %w", child.Kind(), err)
				}
				op.Label = label
			}
			item.Flow = &op
		}
		items = append(items, item)
	}
	return &Ast{tree: tree, items: items}, nil
}

// Tree returns the concrete syntax tree behind the AST.
func (a *Ast) Tree() *Tree { return a.tree }

// Items returns every top-level item in source order.
func (a *Ast) Items() []Item { return a.items }

// FlowControlOps returns every control-flow instruction in source order.
func (a *Ast) FlowControlOps() []FlowControlItem {
	var flows []FlowControlItem
	for _, item := range a.items {
		if item.Flow != nil {
			flows = append(flows, FlowControlItem{Node: item.Node, Op: *item.Flow})
		}
	}
	return flows
}

func findChild(n *Node, kind string) *Node {
	for i := 0; i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}
