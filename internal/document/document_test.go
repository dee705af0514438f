package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/scene"
)

func TestSampleDocumentLoads(t *testing.T) {
	doc := NewSampleDocument()
	sg := scene.NewSceneGraph()
	require.NoError(t, doc.Load(sg))
	require.Equal(t, 4, sg.Len())

	card, ok := sg.Children()[3].(*graph.Group)
	require.True(t, ok)
	assert.Len(t, card.Children(), 2)
	assert.Equal(t, "Card", card.Name())
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := NewSampleDocument()
	sg := scene.NewSceneGraph()
	require.NoError(t, doc.Load(sg))

	out, err := FromScene("Sample", sg).JSON()
	require.NoError(t, err)

	parsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, doc.Graphs, parsed.Graphs)
}

func TestParseRejectsVersion(t *testing.T) {
	_, err := Parse([]byte(`{"version":7,"graphs":[]}`))
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestLoadTwiceIsDuplicate(t *testing.T) {
	doc := NewSampleDocument()
	sg := scene.NewSceneGraph()
	require.NoError(t, doc.Load(sg))
	assert.ErrorIs(t, doc.Load(sg), scene.ErrDuplicate)
}

func TestBuildUnknownType(t *testing.T) {
	doc := &Document{Version: Version, Graphs: []graph.Snapshot{{Type: "star"}}}
	_, err := doc.Build()
	assert.Error(t, err)
}
