package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexcodex/wsls/whitespace/parse"
)

func TestCoordinateFaithfulness(t *testing.T) {
	tree := parse.Tokenize(flowProgram)
	var walk func(n *parse.Node)
	walk = func(n *parse.Node) {
		r := nodeRange(n)
		assert.Equal(t, n.StartPoint().Row, r.Start.Line)
		assert.Equal(t, n.StartPoint().Column, r.Start.Character)
		assert.Equal(t, n.EndPoint().Row, r.End.Line)
		assert.Equal(t, n.EndPoint().Column, r.End.Character)
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
}

func TestPositionPointRoundTrip(t *testing.T) {
	p := parse.Point{Row: 3, Column: 7}
	assert.Equal(t, p, positionToPoint(pointToPosition(p)))
}

func TestURIPathRoundTrip(t *testing.T) {
	path, err := uriToPath(pathToURI("/tmp/program.ws"))
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/program.ws", path)

	_, err = uriToPath("untitled:Untitled-1")
	assert.ErrorIs(t, err, ErrNotFileURI)
}
