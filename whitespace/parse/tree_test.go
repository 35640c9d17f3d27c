package parse

import "testing"

func TestPointOrdering(t *testing.T) {
	a := Point{Row: 0, Column: 5}
	b := Point{Row: 1, Column: 0}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("row ordering broken")
	}
	c := Point{Row: 1, Column: 2}
	if !b.Before(c) {
		t.Fatal("column ordering broken")
	}
	if c.Before(c) {
		t.Fatal("Before must be strict")
	}
}

func TestDescendantForPointRange(t *testing.T) {
	tree := Tokenize(pushThree)
	root := tree.RootNode()

	leaf := root.DescendantForPointRange(Point{Row: 0, Column: 3}, Point{Row: 0, Column: 3})
	if leaf.Kind() != "tab" {
		t.Fatalf("leaf at (0,3): got %q, want tab", leaf.Kind())
	}
	if leaf.Parent() == nil || leaf.Parent().Kind() != "num" {
		t.Fatalf("leaf parent: %v", leaf.Parent())
	}

	// A point past the end of the buffer resolves to the root.
	far := root.DescendantForPointRange(Point{Row: 9, Column: 9}, Point{Row: 9, Column: 9})
	if far != root {
		t.Fatalf("far point: got %q, want root", far.Kind())
	}
}

func TestSpansCrossLines(t *testing.T) {
	// A mark instruction starts with a newline, so the op spans two rows.
	tree := Tokenize("\n   \t\n")
	root := tree.RootNode()
	if root.ChildCount() != 1 {
		t.Fatalf("children: %d", root.ChildCount())
	}
	mark := root.Child(0)
	if mark.Kind() != "op_mark" {
		t.Fatalf("kind: %q", mark.Kind())
	}
	if mark.StartPoint() != (Point{Row: 0, Column: 0}) {
		t.Fatalf("start point: %v", mark.StartPoint())
	}
	if mark.EndPoint() != (Point{Row: 2, Column: 0}) {
		t.Fatalf("end point: %v", mark.EndPoint())
	}
	if mark.StartByte() != 0 || mark.EndByte() != 6 {
		t.Fatalf("byte span: [%d, %d)", mark.StartByte(), mark.EndByte())
	}
}

func TestCursorTraversal(t *testing.T) {
	tree := Tokenize(pushThree)
	cursor := tree.Walk()
	if cursor.Node().Kind() != "source_file" {
		t.Fatalf("cursor starts at %q", cursor.Node().Kind())
	}
	if !cursor.GoToFirstChild() || cursor.Node().Kind() != "op_push" {
		t.Fatalf("first child: %q", cursor.Node().Kind())
	}
	if !cursor.GoToNextSibling() || cursor.Node().Kind() != "ERROR" {
		t.Fatalf("next sibling: %q", cursor.Node().Kind())
	}
	if cursor.GoToNextSibling() {
		t.Fatal("sibling past the end")
	}
	if !cursor.GoToParent() || cursor.Node().Kind() != "source_file" {
		t.Fatalf("parent: %q", cursor.Node().Kind())
	}
	if cursor.GoToParent() {
		t.Fatal("parent above the root")
	}
}

func TestTreeText(t *testing.T) {
	tree := Tokenize(pushThree)
	push := tree.RootNode().Child(0)
	if got := tree.Text(push); got != "   \t\t\n" {
		t.Fatalf("text: %q", got)
	}
}
