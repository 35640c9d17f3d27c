package parse

// The lexer turns a text buffer into the concrete syntax tree. Every byte of
// the input ends up in the tree: space, tab, and newline become character
// leaves grouped under instruction and operand nodes, and any other byte run
// becomes a comment leaf. Malformed instructions are retried as bare number
// literals (a truncated push) and otherwise produce one-character ERROR
// nodes so the scanner can resynchronize.

type lexer struct {
	src string
	pos uint32
	row uint32
	col uint32
}

type lexState struct {
	pos, row, col uint32
}

func (l *lexer) state() lexState        { return lexState{l.pos, l.row, l.col} }
func (l *lexer) restore(s lexState)     { l.pos, l.row, l.col = s.pos, s.row, s.col }
func (l *lexer) point() Point           { return Point{Row: l.row, Column: l.col} }
func (l *lexer) eof() bool              { return l.pos >= uint32(len(l.src)) }

func isSignificant(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// leaf consumes bytes while keep reports true and returns a node of the
// given kind covering them.
func (l *lexer) leaf(kind string, keep func(byte) bool) *Node {
	start := l.pos
	startPoint := l.point()
	for !l.eof() && keep(l.src[l.pos]) {
		if l.src[l.pos] == '\n' {
			l.row++
			l.col = 0
		} else {
			l.col++
		}
		l.pos++
	}
	return &Node{
		kind:       kind,
		startByte:  start,
		endByte:    l.pos,
		startPoint: startPoint,
		endPoint:   l.point(),
	}
}

// skipComments attaches a comment leaf to the container when the input
// continues with non-whitespace bytes.
func (l *lexer) skipComments(container *Node) {
	if l.eof() || isSignificant(l.src[l.pos]) {
		return
	}
	container.attach(l.leaf("comment", func(b byte) bool { return !isSignificant(b) }))
}

// nextChar consumes one significant character (and any comment run before
// it) into the container, returning the character. ok is false at EOF.
func (l *lexer) nextChar(container *Node) (byte, bool) {
	l.skipComments(container)
	if l.eof() {
		return 0, false
	}
	b := l.src[l.pos]
	var kind string
	switch b {
	case ' ':
		kind = "space"
	case '\t':
		kind = "tab"
	default:
		kind = "lf"
	}
	start := l.pos
	startPoint := l.point()
	if b == '\n' {
		l.row++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
	container.attach(&Node{
		kind:       kind,
		startByte:  start,
		endByte:    l.pos,
		startPoint: startPoint,
		endPoint:   l.point(),
	})
	return b, true
}

// scanNumber parses sign + binary digits + newline terminator into a "num"
// node attached to the container. A missing terminator at EOF is accepted.
func (l *lexer) scanNumber(container *Node) bool {
	saved := l.state()
	num := &Node{kind: "num"}
	sign, ok := l.nextChar(num)
	if !ok || sign == '\n' {
		l.restore(saved)
		return false
	}
	for {
		l.skipComments(num)
		if l.eof() {
			break
		}
		b, _ := l.nextChar(num)
		if b == '\n' {
			break
		}
	}
	container.attach(num)
	return true
}

// scanLabel parses binary digits + newline terminator into a "label" node.
// Labels may be empty (a bare terminator).
func (l *lexer) scanLabel(container *Node) bool {
	label := &Node{kind: "label"}
	for {
		l.skipComments(label)
		if l.eof() {
			break
		}
		b, _ := l.nextChar(label)
		if b == '\n' {
			break
		}
	}
	if len(label.children) == 0 {
		return false
	}
	container.attach(label)
	return true
}

// instruction parses one complete instruction. On failure it returns nil
// with the lexer state unchanged.
func (l *lexer) instruction() *Node {
	saved := l.state()
	node := &Node{}
	kind := l.scanInstruction(node)
	if kind == "" {
		l.restore(saved)
		return nil
	}
	node.kind = kind
	return node
}

// scanInstruction consumes the IMP prefix and command characters, plus any
// operand, and returns the op kind. An empty kind signals failure.
func (l *lexer) scanInstruction(node *Node) string {
	imp, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch imp {
	case ' ':
		return l.scanStack(node)
	case '\t':
		sub, ok := l.nextChar(node)
		if !ok {
			return ""
		}
		switch sub {
		case ' ':
			return l.scanArith(node)
		case '\t':
			return l.scanHeap(node)
		default:
			return l.scanIO(node)
		}
	default:
		return l.scanFlow(node)
	}
}

func (l *lexer) scanStack(node *Node) string {
	cmd, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch cmd {
	case ' ':
		if !l.scanNumber(node) {
			return ""
		}
		return "op_push"
	case '\t':
		dir, ok := l.nextChar(node)
		if !ok {
			return ""
		}
		switch dir {
		case ' ':
			if !l.scanNumber(node) {
				return ""
			}
			return "op_copy"
		case '\n':
			if !l.scanNumber(node) {
				return ""
			}
			return "op_slide"
		}
		return ""
	default: // '\n'
		dir, ok := l.nextChar(node)
		if !ok {
			return ""
		}
		switch dir {
		case ' ':
			return "op_dup"
		case '\t':
			return "op_swap"
		default:
			return "op_discard"
		}
	}
}

func (l *lexer) scanArith(node *Node) string {
	a, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	b, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch {
	case a == ' ' && b == ' ':
		return "op_add"
	case a == ' ' && b == '\t':
		return "op_sub"
	case a == ' ' && b == '\n':
		return "op_mul"
	case a == '\t' && b == ' ':
		return "op_div"
	case a == '\t' && b == '\t':
		return "op_mod"
	}
	return ""
}

func (l *lexer) scanHeap(node *Node) string {
	cmd, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch cmd {
	case ' ':
		return "op_store"
	case '\t':
		return "op_retrieve"
	}
	return ""
}

func (l *lexer) scanIO(node *Node) string {
	a, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	b, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch {
	case a == ' ' && b == ' ':
		return "op_outchar"
	case a == ' ' && b == '\t':
		return "op_outnum"
	case a == '\t' && b == ' ':
		return "op_readchar"
	case a == '\t' && b == '\t':
		return "op_readnum"
	}
	return ""
}

func (l *lexer) scanFlow(node *Node) string {
	a, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	b, ok := l.nextChar(node)
	if !ok {
		return ""
	}
	switch a {
	case ' ':
		var kind string
		switch b {
		case ' ':
			kind = "op_mark"
		case '\t':
			kind = "op_call"
		default:
			kind = "op_jump"
		}
		if !l.scanLabel(node) {
			return ""
		}
		return kind
	case '\t':
		switch b {
		case ' ':
			if !l.scanLabel(node) {
				return ""
			}
			return "op_jz"
		case '\t':
			if !l.scanLabel(node) {
				return ""
			}
			return "op_jn"
		default:
			return "op_ret"
		}
	default:
		if b == '\n' {
			return "op_end"
		}
		return ""
	}
}

// bareNumber retries a failed instruction as a standalone number literal,
// the common shape of a push whose command prefix was truncated.
func (l *lexer) bareNumber() *Node {
	saved := l.state()
	holder := &Node{}
	if !l.scanNumber(holder) || holder.ChildCount() == 0 {
		l.restore(saved)
		return nil
	}
	num := holder.children[0]
	num.parent = nil
	if num.ChildCount() < 2 {
		l.restore(saved)
		return nil
	}
	return num
}

// errorNode consumes a single significant character as an ERROR node.
func (l *lexer) errorNode() *Node {
	node := &Node{kind: "ERROR"}
	if _, ok := l.nextChar(node); !ok && node.ChildCount() == 0 {
		return nil
	}
	return node
}
