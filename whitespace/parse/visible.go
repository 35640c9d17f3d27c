package parse

import "strings"

// ToVisible renders whitespace source with visible stand-ins: S for space,
// T for tab, and L for newline. The L keeps its line break so the rendered
// text preserves the original layout, and comment bytes pass through.
func ToVisible(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * 2)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			sb.WriteByte('S')
		case '\t':
			sb.WriteByte('T')
		case '\n':
			sb.WriteString("L\n")
		default:
			sb.WriteByte(text[i])
		}
	}
	return sb.String()
}
