// Package tokens defines the semantic values of the whitespace language:
// numeric literals, jump labels, and flow-control operations. Values are
// decoded from the raw whitespace text of a syntax node and rendered in the
// visible forms editors display.
package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyBits is returned when a literal carries no sign bit at all.
	ErrEmptyBits = errors.New("tokens: empty bit string")
	// ErrBadBits is returned when a literal contains a byte that is neither
	// space, tab, nor the terminating newline.
	ErrBadBits = errors.New("tokens: invalid bit pattern")
)

// Num is a numeric literal. The first whitespace character is the sign
// (space positive, tab negative), the rest are binary digits (space 0,
// tab 1), most significant first, terminated by a newline.
type Num struct {
	value int64
}

// ParseNum decodes the raw source text of a num node. Comment bytes are not
// permitted here; callers strip them before decoding.
func ParseNum(raw string) (Num, error) {
	bits, err := scanBits(raw)
	if err != nil {
		return Num{}, err
	}
	if len(bits) == 0 {
		return Num{}, ErrEmptyBits
	}
	negative := bits[0] == '1'
	var value int64
	for _, b := range bits[1:] {
		value <<= 1
		if b == '1' {
			value |= 1
		}
	}
	if negative {
		value = -value
	}
	return Num{value: value}, nil
}

// Value returns the decoded integer.
func (n Num) Value() int64 { return n.value }

// String renders the literal as its decimal value.
func (n Num) String() string { return strconv.FormatInt(n.value, 10) }

// Label is a symbolic jump target: an arbitrary bit string terminated by a
// newline. Two labels are the same target iff their bit strings are equal.
type Label struct {
	name string
}

// ParseLabel decodes the raw source text of a label node.
func ParseLabel(raw string) (Label, error) {
	bits, err := scanBits(raw)
	if err != nil {
		return Label{}, err
	}
	return Label{name: bits}, nil
}

// Name returns the label's bit string, rendered with '0' and '1'.
func (l Label) Name() string { return l.name }

// String renders the bare bit string.
func (l Label) String() string { return l.name }

// GoString renders the form shown on hover, distinguishing a label from the
// number its bits would decode to.
func (l Label) GoString() string { return fmt.Sprintf("Label(%q)", l.name) }

// scanBits maps space/tab to '0'/'1' and stops at the terminating newline.
// The terminator is optional so truncated trailing literals still decode.
func scanBits(raw string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ':
			sb.WriteByte('0')
		case '\t':
			sb.WriteByte('1')
		case '\n':
			if i != len(raw)-1 {
				return "", fmt.Errorf("%w: newline at offset %d", ErrBadBits, i)
			}
			return sb.String(), nil
		default:
			return "", fmt.Errorf("%w: byte %q at offset %d", ErrBadBits, raw[i], i)
		}
	}
	return sb.String(), nil
}

// FlowControlKind enumerates the control-flow instructions.
type FlowControlKind int

const (
	Mark FlowControlKind = iota // mark a jump target
	Call                        // call a subroutine
	Jump                        // unconditional jump
	Jz                          // jump if top of stack is zero
	Jn                          // jump if top of stack is negative
	Ret                         // return from a subroutine
	End                         // end of program
)

func (k FlowControlKind) String() string {
	switch k {
	case Mark:
		return "mark"
	case Call:
		return "call"
	case Jump:
		return "jump"
	case Jz:
		return "jz"
	case Jn:
		return "jn"
	case Ret:
		return "ret"
	case End:
		return "end"
	}
	return fmt.Sprintf("FlowControlKind(%d)", int(k))
}

// HasLabel reports whether instructions of this kind carry a label operand.
func (k FlowControlKind) HasLabel() bool {
	switch k {
	case Mark, Call, Jump, Jz, Jn:
		return true
	}
	return false
}

// FlowControlOp is a single control-flow instruction, optionally carrying
// its label operand.
type FlowControlOp struct {
	Kind  FlowControlKind
	Label Label
}

// String renders the long form, e.g. "call label 011" or "end".
func (op FlowControlOp) String() string {
	if op.Kind.HasLabel() {
		return fmt.Sprintf("%s label %s", op.Kind, op.Label)
	}
	return op.Kind.String()
}

// Compact renders the inlay-hint form with the "label " filler removed,
// e.g. "call 011".
func (op FlowControlOp) Compact() string {
	return strings.ReplaceAll(op.String(), "label ", "")
}
